package app

import (
	"service-assignment/internal/service/orders"
	"service-assignment/internal/transport/kafka"
)

func makeOrdersHandler(p *orders.Processor) kafka.HandleFunc {
	return p.Handle
}
