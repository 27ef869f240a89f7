package models

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Customer is an opaque customer record. The handler never inspects its fields.
type Customer map[string]any

// QueryResult is one page of the customers index with every reference resolved.
type QueryResult struct {
	Data []Customer `json:"data"`
	// After is the continuation cursor of the page, nil on the last page.
	After map[string]types.AttributeValue `json:"-"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
