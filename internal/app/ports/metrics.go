package ports

// EncodeMetrics counts encoder outcomes. Rejections are keyed by the error
// code reported to the client.
type EncodeMetrics interface {
	RecordAccepted()
	RecordRejected(code string)
}
