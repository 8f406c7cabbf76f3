package domain

// AttributeType enumerates the value kinds an attribute definition can carry.
type AttributeType string

const (
	AttributeText        AttributeType = "text"
	AttributeSelect      AttributeType = "select"
	AttributeMultiselect AttributeType = "multiselect"
	AttributeBoolean     AttributeType = "boolean"
	AttributePrice       AttributeType = "price"
	AttributeDecimal     AttributeType = "decimal"
	AttributeDate        AttributeType = "date"
)

// AttributeDefinition is the store-configured metadata for one attribute.
// Definitions are immutable for the duration of a request.
type AttributeDefinition struct {
	ID           int64         `json:"id"`
	Code         string        `json:"code"`
	Type         AttributeType `json:"type"`
	IsFilterable bool          `json:"is_filterable"`
	Position     int           `json:"position"`
}

// ValueColumn returns the physical column of the attribute-value table that
// holds this attribute's values.
func (a *AttributeDefinition) ValueColumn() string {
	switch a.Type {
	case AttributePrice, AttributeDecimal:
		return "value_decimal"
	case AttributeSelect, AttributeMultiselect, AttributeBoolean:
		return "value_option"
	case AttributeDate:
		return "value_date"
	default:
		return "value_text"
	}
}

// IsRange reports whether filter values for this attribute are interpreted as
// an inclusive two-ended range rather than a membership set.
func (a *AttributeDefinition) IsRange() bool {
	return a.Type == AttributePrice
}
