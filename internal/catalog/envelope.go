package catalog

// Envelope carries the tag, the correlation id, and the variant body
// across the queue/transport boundary. Callers switch on Type and know
// which concrete *Req/*Conf type to expect in Body; the variant
// representation never leaks into the public API.
type Envelope struct {
	ID   string
	Role Role
	Type Type
	Body interface{}
}
