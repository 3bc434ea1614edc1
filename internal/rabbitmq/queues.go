package rabbitmq

const (
	CLASSROOM_ADDITIONS_QUEUE     = "classroom-additions"
	MODERATION_OUTCOME_MAIL_QUEUE = "notifications.moderation_outcome_mail"
)
