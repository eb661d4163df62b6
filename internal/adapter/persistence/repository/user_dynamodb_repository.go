package repository

import (
	"context"
	"time"

	"freework/internal/domain/entities"
	"freework/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultUsersTableName = "users"
	usersMailIndex        = "mail-index"
)

type userItem struct {
	ID             string `dynamodbav:"id"`
	Username       string `dynamodbav:"username"`
	Password       string `dynamodbav:"password"`
	Mail           string `dynamodbav:"mail"`
	Role           string `dynamodbav:"role"`
	CashfreeBeneID string `dynamodbav:"cashfree_bene_id,omitempty"`
	CreatedAt      string `dynamodbav:"created_at"`
	UpdatedAt      string `dynamodbav:"updated_at"`
}

// UserDynamoRepository persists User entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: mail-index (PK: mail)

type UserDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb *dynamodb.Client) *UserDynamoRepository {
	return &UserDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("USERS_TABLE", defaultUsersTableName),
	}
}

func (r *UserDynamoRepository) Create(ctx context.Context, u entities.User) (entities.User, error) {
	it := toUserItem(u)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.User{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.User{}, err
	}
	return u, nil
}

func (r *UserDynamoRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.User{}, err
	}
	if len(out.Item) == 0 {
		return entities.User{}, nil
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func (r *UserDynamoRepository) GetByMail(ctx context.Context, mail string) (entities.User, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(usersMailIndex),
		KeyConditionExpression: aws.String("mail = :mail"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":mail": &types.AttributeValueMemberS{Value: mail},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.User{}, err
	}
	if len(out.Items) == 0 {
		return entities.User{}, nil
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func toUserItem(u entities.User) userItem {
	return userItem{
		ID:             u.ID,
		Username:       u.Username,
		Password:       u.Password,
		Mail:           u.Mail,
		Role:           string(u.Role),
		CashfreeBeneID: u.CashfreeBeneID,
		CreatedAt:      u.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:      u.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromUserItem(it userItem) entities.User {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.User{
		ID:             it.ID,
		Username:       it.Username,
		Password:       it.Password,
		Mail:           it.Mail,
		Role:           entities.UserRole(it.Role),
		CashfreeBeneID: it.CashfreeBeneID,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
}
