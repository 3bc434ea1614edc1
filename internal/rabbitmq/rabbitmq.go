package rabbitmq

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

type MQConn struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func New(connString string) (*MQConn, error) {
	conn, err := amqp.Dial(connString)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &MQConn{
		conn: conn,
		ch:   ch,
	}, nil
}

func (m *MQConn) Publish(queue string, body []byte) error {
	if _, err := m.ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return err
	}

	return m.ch.Publish("", queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

func (m *MQConn) Consume(queue string) (<-chan amqp.Delivery, error) {
	if _, err := m.ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, err
	}

	return m.ch.Consume(queue, "", false, false, false, false, nil)
}

func (m *MQConn) Close() {
	m.ch.Close()
	m.conn.Close()
}
