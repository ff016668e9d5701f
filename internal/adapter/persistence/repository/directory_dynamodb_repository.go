package repository

import (
	"context"

	"globalpartner_checkout/internal/domain/entities"
	"globalpartner_checkout/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultSellersTableName  = "sellers"
	defaultProfilesTableName = "profiles"
	profilesRoleIndex        = "role-index"
	roleAdmin                = "admin"
)

type sellerItem struct {
	ID    string `dynamodbav:"id"`
	Name  string `dynamodbav:"name"`
	Email string `dynamodbav:"email"`
}

type profileItem struct {
	ID       string `dynamodbav:"id"`
	FullName string `dynamodbav:"full_name"`
	Email    string `dynamodbav:"email"`
	Role     string `dynamodbav:"role"`
}

// DirectoryDynamoRepository reads sellers and admin profiles.
//
// Table requirements:
//   - sellers: PK id (string)
//   - profiles: PK id (string), GSI role-index (PK: role)
type DirectoryDynamoRepository struct {
	ddb           DynamoDBAPI
	sellersTable  string
	profilesTable string
}

var _ interfaces.IDirectory = (*DirectoryDynamoRepository)(nil)

func NewDirectoryDynamoRepository(ddb DynamoDBAPI) *DirectoryDynamoRepository {
	return &DirectoryDynamoRepository{
		ddb:           ddb,
		sellersTable:  getenvDefault("SELLERS_TABLE", defaultSellersTableName),
		profilesTable: getenvDefault("PROFILES_TABLE", defaultProfilesTableName),
	}
}

func (r *DirectoryDynamoRepository) GetSeller(ctx context.Context, id string) (entities.Seller, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.sellersTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return entities.Seller{}, err
	}
	if len(out.Item) == 0 {
		return entities.Seller{}, nil
	}

	var it sellerItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Seller{}, err
	}
	return entities.Seller{ID: it.ID, Name: it.Name, Email: it.Email}, nil
}

// ListAdmins reads the admin set on every call so role changes apply
// without a restart.
func (r *DirectoryDynamoRepository) ListAdmins(ctx context.Context) ([]entities.Admin, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.profilesTable),
		IndexName:              aws.String(profilesRoleIndex),
		KeyConditionExpression: aws.String("#role = :role"),
		ExpressionAttributeNames: map[string]string{
			"#role": "role",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":role": &types.AttributeValueMemberS{Value: roleAdmin},
		},
	})

	var admins []entities.Admin
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it profileItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			if it.Email == "" {
				continue
			}
			admins = append(admins, entities.Admin{ID: it.ID, Name: it.FullName, Email: it.Email})
		}
	}
	return admins, nil
}
