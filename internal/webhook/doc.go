// Package webhook parses inbound content management webhook deliveries.
//
// It discriminates the resource kind and action from the topic header,
// extracts the space, entry, and content type identifiers from the body, and
// normalizes field values across the two wire shapes (plain scalar and
// locale-keyed mapping). The rest of the service consumes the resulting
// Event read-only and never touches the wire format.
package webhook
