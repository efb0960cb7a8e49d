package infrastructure

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/tidwall/gjson"
)

// TableSchema mirrors the embedded JSON table definitions.
type TableSchema struct {
	TableName              string                 `json:"TableName"`
	AttributeDefinitions   []AttributeDefinition  `json:"AttributeDefinitions"`
	KeySchema              []KeySchemaElement     `json:"KeySchema"`
	ProvisionedThroughput  Throughput             `json:"ProvisionedThroughput"`
	GlobalSecondaryIndexes []GlobalSecondaryIndex `json:"GlobalSecondaryIndexes,omitempty"`
}

type AttributeDefinition struct {
	AttributeName string `json:"AttributeName"`
	AttributeType string `json:"AttributeType"`
}

type KeySchemaElement struct {
	AttributeName string `json:"AttributeName"`
	KeyType       string `json:"KeyType"`
}

type Throughput struct {
	ReadCapacityUnits  int64 `json:"ReadCapacityUnits"`
	WriteCapacityUnits int64 `json:"WriteCapacityUnits"`
}

type GlobalSecondaryIndex struct {
	IndexName             string             `json:"IndexName"`
	KeySchema             []KeySchemaElement `json:"KeySchema"`
	Projection            Projection         `json:"Projection"`
	ProvisionedThroughput Throughput         `json:"ProvisionedThroughput"`
}

type Projection struct {
	ProjectionType string `json:"ProjectionType"`
}

//go:embed table_schema.json
var tablesSchema []byte

// GetTables returns the CreateTableInput for one of the ledger tables. The
// schema key is the default table name; the actual (possibly overridden)
// table name is written back into the input.
func GetTables(schemaKey, tableName string) (*dynamodb.CreateTableInput, error) {
	tableJSON := gjson.Get(string(tablesSchema), schemaKey)
	if !tableJSON.Exists() {
		return nil, fmt.Errorf("table schema not found for key: %s", schemaKey)
	}

	var schema TableSchema
	if err := json.Unmarshal([]byte(tableJSON.Raw), &schema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema JSON: %w", err)
	}

	schema.TableName = tableName
	return schema.ToDynamoInput(), nil
}

// ToDynamoInput converts the JSON schema into the SDK's CreateTableInput.
func (s *TableSchema) ToDynamoInput() *dynamodb.CreateTableInput {
	input := &dynamodb.CreateTableInput{
		TableName: aws.String(s.TableName),
		ProvisionedThroughput: &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(s.ProvisionedThroughput.ReadCapacityUnits),
			WriteCapacityUnits: aws.Int64(s.ProvisionedThroughput.WriteCapacityUnits),
		},
	}

	for _, ad := range s.AttributeDefinitions {
		input.AttributeDefinitions = append(input.AttributeDefinitions, types.AttributeDefinition{
			AttributeName: aws.String(ad.AttributeName),
			AttributeType: types.ScalarAttributeType(ad.AttributeType),
		})
	}

	for _, ks := range s.KeySchema {
		input.KeySchema = append(input.KeySchema, types.KeySchemaElement{
			AttributeName: aws.String(ks.AttributeName),
			KeyType:       types.KeyType(ks.KeyType),
		})
	}

	for _, gsi := range s.GlobalSecondaryIndexes {
		idx := types.GlobalSecondaryIndex{
			IndexName: aws.String(gsi.IndexName),
			Projection: &types.Projection{
				ProjectionType: types.ProjectionType(gsi.Projection.ProjectionType),
			},
			ProvisionedThroughput: &types.ProvisionedThroughput{
				ReadCapacityUnits:  aws.Int64(gsi.ProvisionedThroughput.ReadCapacityUnits),
				WriteCapacityUnits: aws.Int64(gsi.ProvisionedThroughput.WriteCapacityUnits),
			},
		}
		for _, ks := range gsi.KeySchema {
			idx.KeySchema = append(idx.KeySchema, types.KeySchemaElement{
				AttributeName: aws.String(ks.AttributeName),
				KeyType:       types.KeyType(ks.KeyType),
			})
		}
		input.GlobalSecondaryIndexes = append(input.GlobalSecondaryIndexes, idx)
	}

	return input
}
