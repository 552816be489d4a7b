package menu

import (
	"fmt"

	"banquet-admin/model"

	"go.mongodb.org/mongo-driver/bson"
)

// DecodePayload parses a JSON response body into an ordered document.
func DecodePayload(body []byte) (bson.Raw, error) {
	doc, err := model.ParseDocument(body)
	if err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %v", err)
	}
	return bson.Marshal(doc)
}
