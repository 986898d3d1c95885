package ports

// ExtractorPort resolves the actor behind an inbound event. The second
// return is false when no usable name could be determined; such events
// are never ingested.
type ExtractorPort interface {
	Extract(msg *GatewayMessage) (string, bool)
}
