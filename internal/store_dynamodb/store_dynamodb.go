package store_dynamodb

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/pennsieve/customers-service/internal/errors"
	"github.com/pennsieve/customers-service/internal/models"
)

// maxTransactGetItems is the DynamoDB limit on items per TransactGetItems call.
const maxTransactGetItems = 100

// DynamoDBAPI is the subset of *dynamodb.Client the customer store needs.
type DynamoDBAPI interface {
	Scan(context.Context, *dynamodb.ScanInput, ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactGetItems(context.Context, *dynamodb.TransactGetItemsInput, ...func(*dynamodb.Options)) (*dynamodb.TransactGetItemsOutput, error)
}

type CustomerStore interface {
	List(context.Context) (models.QueryResult, error)
}

type CustomerDatabaseStore struct {
	DB            DynamoDBAPI
	TableName     string
	IndexName     string
	KeyAttributes []string
	PageSize      int32
}

func NewCustomerDatabaseStore(db DynamoDBAPI, tableName, indexName string, keyAttributes []string, pageSize int32) CustomerStore {
	return &CustomerDatabaseStore{
		DB:            db,
		TableName:     tableName,
		IndexName:     indexName,
		KeyAttributes: keyAttributes,
		PageSize:      pageSize,
	}
}

// List reads the first page of the customers index and resolves every reference in
// it to the full record. The continuation cursor is returned in QueryResult.After
// but never followed.
func (r *CustomerDatabaseStore) List(ctx context.Context) (models.QueryResult, error) {
	refs, after, err := r.scanIndexPage(ctx)
	if err != nil {
		return models.QueryResult{}, err
	}

	customers, err := r.getAll(ctx, refs)
	if err != nil {
		return models.QueryResult{}, err
	}

	return models.QueryResult{Data: customers, After: after}, nil
}

func (r *CustomerDatabaseStore) scanIndexPage(ctx context.Context) ([]CustomerRef, map[string]types.AttributeValue, error) {
	op := fmt.Sprintf("scan %s", r.IndexName)

	if len(r.KeyAttributes) == 0 {
		return nil, nil, &errors.QueryError{Op: op, Err: errors.ErrMissingKeyAttribute}
	}
	names := make([]expression.NameBuilder, 0, len(r.KeyAttributes))
	for _, name := range r.KeyAttributes {
		names = append(names, expression.Name(name))
	}
	expr, err := expression.NewBuilder().
		WithProjection(expression.NamesList(names[0], names[1:]...)).
		Build()
	if err != nil {
		return nil, nil, &errors.QueryError{Op: op, Err: fmt.Errorf("error building expression: %w", err)}
	}

	response, err := r.DB.Scan(ctx, &dynamodb.ScanInput{
		TableName:                aws.String(r.TableName),
		IndexName:                aws.String(r.IndexName),
		Limit:                    aws.Int32(r.PageSize),
		ExpressionAttributeNames: expr.Names(),
		ProjectionExpression:     expr.Projection(),
	})
	if err != nil {
		return nil, nil, &errors.QueryError{Op: op, Err: err}
	}

	refs := make([]CustomerRef, 0, len(response.Items))
	for _, item := range response.Items {
		ref, err := NewCustomerRef(item, r.KeyAttributes)
		if err != nil {
			return nil, nil, &errors.QueryError{Op: op, Err: err}
		}
		refs = append(refs, ref)
	}

	return refs, response.LastEvaluatedKey, nil
}

// getAll fetches the records behind refs, keeping their order. Each chunk is read
// in one transaction so a chunk either resolves completely or fails.
func (r *CustomerDatabaseStore) getAll(ctx context.Context, refs []CustomerRef) ([]models.Customer, error) {
	customers := make([]models.Customer, 0, len(refs))

	for start := 0; start < len(refs); start += maxTransactGetItems {
		chunk := refs[start:min(start+maxTransactGetItems, len(refs))]
		fetched, err := r.getChunk(ctx, chunk)
		if err != nil {
			return nil, err
		}
		customers = append(customers, fetched...)
	}

	return customers, nil
}

// getChunk reads chunk in a single transaction. A transaction whose response would
// exceed the 4 MB limit is split in half until it fits.
func (r *CustomerDatabaseStore) getChunk(ctx context.Context, chunk []CustomerRef) ([]models.Customer, error) {
	items := make([]types.TransactGetItem, 0, len(chunk))
	for _, ref := range chunk {
		items = append(items, types.TransactGetItem{
			Get: &types.Get{
				TableName: aws.String(r.TableName),
				Key:       ref.GetKey(),
			},
		})
	}

	response, err := r.DB.TransactGetItems(ctx, &dynamodb.TransactGetItemsInput{
		TransactItems: items,
	})
	if err != nil {
		if len(chunk) > 1 && isResponseTooLarge(err) {
			half := len(chunk) / 2
			head, err := r.getChunk(ctx, chunk[:half])
			if err != nil {
				return nil, err
			}
			tail, err := r.getChunk(ctx, chunk[half:])
			if err != nil {
				return nil, err
			}
			return append(head, tail...), nil
		}
		return nil, &errors.QueryError{Op: "get customers", Err: err}
	}
	if len(response.Responses) != len(chunk) {
		return nil, &errors.QueryError{
			Op:  "get customers",
			Err: fmt.Errorf("%w: expected %d items, got %d", errors.ErrDynamoDB, len(chunk), len(response.Responses)),
		}
	}

	customers := make([]models.Customer, 0, len(chunk))
	for i, itemResponse := range response.Responses {
		if itemResponse.Item == nil {
			return nil, &errors.QueryError{
				Op:  "get customers",
				Err: fmt.Errorf("%w: %s", errors.ErrRecordNotFound, chunk[i]),
			}
		}
		customer := models.Customer{}
		if err := attributevalue.UnmarshalMap(itemResponse.Item, &customer); err != nil {
			return nil, &errors.QueryError{
				Op:  "get customers",
				Err: fmt.Errorf("%w: %w", errors.ErrUnmarshaling, err),
			}
		}
		customers = append(customers, customer)
	}
	return customers, nil
}

func isResponseTooLarge(err error) bool {
	var apiErr smithy.APIError
	if !stderrors.As(err, &apiErr) || apiErr.ErrorCode() != "ValidationException" {
		return false
	}
	return strings.Contains(strings.ToLower(apiErr.ErrorMessage()), "size")
}
