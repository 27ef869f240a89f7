package store_dynamodb

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pennsieve/customers-service/internal/errors"
)

// CustomerRef points at one customer record: the table key attributes
// projected into the customers index.
type CustomerRef map[string]types.AttributeValue

func NewCustomerRef(item map[string]types.AttributeValue, keyAttributes []string) (CustomerRef, error) {
	ref := make(CustomerRef, len(keyAttributes))
	for _, name := range keyAttributes {
		value, ok := item[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", errors.ErrMissingKeyAttribute, name)
		}
		ref[name] = value
	}
	return ref, nil
}

func (r CustomerRef) GetKey() map[string]types.AttributeValue {
	return r
}

func (r CustomerRef) String() string {
	var key map[string]any
	if err := attributevalue.UnmarshalMap(r, &key); err != nil {
		return "<invalid reference>"
	}
	names := make([]string, 0, len(key))
	for name := range key {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%v", name, key[name]))
	}
	return strings.Join(parts, ",")
}
