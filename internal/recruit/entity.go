package recruit

// Entity is one recruitable operator from a catalog snapshot. Constructed
// fresh on every fetch and immutable afterwards.
type Entity struct {
	Name       string   `json:"name"`
	Profession string   `json:"profession"`
	Position   string   `json:"position,omitempty"`
	Stars      int      `json:"stars"`
	Tags       []string `json:"tags"`
	Obtain     []string `json:"obtain,omitempty"`
	URL        string   `json:"url,omitempty"`
}

// Attributes is the bit-encoded view of an entity against one universe.
// Encoding and matching are kept as separate types so each is testable on
// its own.
type Attributes struct {
	Mask  uint64
	Terms []string
	Tier  string
}

// TierFor returns the rarity term derived from a star rank, or "" when the
// rank matches no rule.
func TierFor(stars int, tiers []TierRule) string {
	for _, rule := range tiers {
		if stars == rule.Stars {
			return rule.Term
		}
	}
	return ""
}

// Encode builds an entity's attribute bitmask: profession, position, derived
// rarity term, and every tag the universe recognizes. Unrecognized values
// contribute nothing.
func Encode(u *Universe, e Entity, tiers []TierRule) Attributes {
	var mask uint64
	if i, ok := u.Bit(e.Profession); ok {
		mask |= 1 << i
	}
	if i, ok := u.Bit(e.Position); ok {
		mask |= 1 << i
	}
	tier := TierFor(e.Stars, tiers)
	if tier != "" {
		if i, ok := u.Bit(tier); ok {
			mask |= 1 << i
		}
	}
	for _, tag := range e.Tags {
		if i, ok := u.Bit(tag); ok {
			mask |= 1 << i
		}
	}
	return Attributes{Mask: mask, Terms: u.TermsOf(mask), Tier: tier}
}
