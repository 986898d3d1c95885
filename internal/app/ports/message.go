package ports

type MessagePort interface {
	Handle(msg *GatewayMessage)
}
