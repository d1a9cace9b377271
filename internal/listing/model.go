// Package listing provides the listing record model and its assembly.
package listing

// Type is the listing intent of a message.
type Type string

const (
	TypeRent            Type = "rent"
	TypeSell            Type = "sell"
	TypeRentRequirement Type = "rent_requirement"
	TypeSellRequirement Type = "sell_requirement"
	TypeRequirement     Type = "requirement"
	TypeOther           Type = "other"
)

// KnownTypes is the set of built-in listing types.
var KnownTypes = []Type{TypeRent, TypeSell, TypeRentRequirement, TypeSellRequirement, TypeRequirement, TypeOther}

// IsKnown reports whether t is one of the built-in listing types.
func (t Type) IsKnown() bool {
	for _, k := range KnownTypes {
		if t == k {
			return true
		}
	}
	return false
}

// Status tells whether a record carries enough to be used without review.
type Status string

const (
	StatusComplete    Status = "complete"
	StatusNeedsReview Status = "needs_review"
)

// Attributes holds the nine optional values extracted from a message.
// A nil field means the attribute was not found.
type Attributes struct {
	PropertyName *string `json:"property_name"`
	PropertyType *string `json:"property_type"`
	Location     *string `json:"location"`
	Dimensions   *string `json:"dimensions"`
	RentOrPrice  *int64  `json:"rent_or_price"`
	Phone        *string `json:"phone"`
	Furnishing   *string `json:"furnishing"`
	Floor        *string `json:"floor"`
	Facing       *string `json:"facing"`
}

// Record is one cleaned listing, in input message order.
type Record struct {
	Sender      string `json:"sender"`
	Message     string `json:"message"`
	ListingType Type   `json:"listing_type"`
	Attributes
	Status Status `json:"status"`
}

// Assemble combines a message with its classification and attributes.
// It never fails; missing attributes only affect Status.
func Assemble(sender, message string, typ Type, attrs Attributes) Record {
	return Record{
		Sender:      sender,
		Message:     message,
		ListingType: typ,
		Attributes:  attrs,
		Status:      statusOf(attrs),
	}
}

// statusOf is complete only when both property type and location are known.
func statusOf(attrs Attributes) Status {
	if attrs.PropertyType != nil && attrs.Location != nil {
		return StatusComplete
	}
	return StatusNeedsReview
}
