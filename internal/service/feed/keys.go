package feed

import "strings"

const (
	productNamespace = "products"
	feedNamespace    = "feeds"
)

func productKey(id string) string {
	return "product:" + id
}

func merchantIndexKey(merchantID, merchantProductID string) string {
	return strings.Join([]string{"product", "merchant", merchantID, merchantProductID}, ":")
}

func metadataKey(feedID string) string {
	return "feed:metadata:" + feedID
}
