package model

// TypeStat aggregates active documents per document type. Types with no
// documents still appear with zero counts.
type TypeStat struct {
	TypeName      string `json:"type_name"`
	DisplayName   string `json:"display_name"`
	DocumentCount int    `json:"document_count"`
	TotalBytes    int64  `json:"total_bytes"`
	VerifiedCount int    `json:"verified_count"`
}
