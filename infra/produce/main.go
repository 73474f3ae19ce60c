package produce

import amqp "github.com/rabbitmq/amqp091-go"

type Produce struct {
	DocumentService *DocumentProduce
}

func InitProduce(channel *amqp.Channel, exchange string) *Produce {
	return &Produce{
		DocumentService: NewDocumentProduce(channel, exchange),
	}
}
