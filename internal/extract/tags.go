package extract

import "strings"

// Keyword maps a product-name substring to a package label.
type Keyword struct {
	Needle string
	Label  string
}

// Classifier resolves a package label from tags, then from a product name.
type Classifier struct {
	Tags     map[string]string // normalized tag -> label
	Keywords []Keyword         // checked in order, highest tier first
}

// NormalizeTag lowercases a tag and joins its words with hyphens.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.Join(strings.Fields(tag), "-"))
}

// Classify returns the label of the first matching tag. With no tag match it falls back to a
// case-insensitive keyword search of product.
func (c Classifier) Classify(tags []string, product string) (string, bool) {
	for _, tag := range tags {
		if label, ok := c.Tags[NormalizeTag(tag)]; ok {
			return label, true
		}
	}
	if product == "" {
		return "", false
	}
	lower := strings.ToLower(product)
	for _, kw := range c.Keywords {
		if strings.Contains(lower, kw.Needle) {
			return kw.Label, true
		}
	}
	return "", false
}

// Tags converts a decoded JSON value to a tag list. Anything but an array yields false;
// non-string elements are skipped.
func Tags(v any) ([]string, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

var checkoutInterest = Classifier{
	Tags: map[string]string{
		"package-interest-gold":  "Gold ($797)",
		"package-interest-vip":   "VIP ($2,497)",
		"package-interest-elite": "Elite ($7,397)",
		"gold":                   "Gold",
		"vip":                    "VIP",
		"elite":                  "Elite",
	},
}

var purchasePackage = Classifier{
	Tags: map[string]string{
		"purchased-gold":  "Gold Package ($797)",
		"purchased-vip":   "VIP Package ($2,497)",
		"purchased-elite": "Elite Package ($7,397)",
		"gold-purchased":  "Gold Package ($797)",
		"vip-purchased":   "VIP Package ($2,497)",
		"elite-purchased": "Elite Package ($7,397)",
	},
	Keywords: []Keyword{
		{Needle: "elite", Label: "Elite Package"},
		{Needle: "vip", Label: "VIP Package"},
		{Needle: "gold", Label: "Gold Package"},
	},
}
