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

const defaultProjectsTableName = "projects"

type projectItem struct {
	ID                   string   `dynamodbav:"id"`
	ProjectName          string   `dynamodbav:"projectname"`
	Description          string   `dynamodbav:"description"`
	Amount               float64  `dynamodbav:"amount"`
	Deadline             string   `dynamodbav:"deadline"`
	Tags                 []string `dynamodbav:"tags,omitempty"`
	Difficulty           string   `dynamodbav:"difficulty"`
	Proposals            int      `dynamodbav:"proposals"`
	CompleteStatus       bool     `dynamodbav:"complete_status"`
	AssignedFreelancerID string   `dynamodbav:"assigned_freelancer_id,omitempty"`
	CreatedAt            string   `dynamodbav:"created_at"`
	UpdatedAt            string   `dynamodbav:"updated_at"`
}

// ProjectDynamoRepository persists Project entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type ProjectDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IProjectRepository = (*ProjectDynamoRepository)(nil)

func NewProjectDynamoRepository(ddb *dynamodb.Client) *ProjectDynamoRepository {
	return &ProjectDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PROJECTS_TABLE", defaultProjectsTableName),
	}
}

func (r *ProjectDynamoRepository) Create(ctx context.Context, p entities.Project) (entities.Project, error) {
	it := toProjectItem(p)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Project{}, err
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
		return entities.Project{}, err
	}
	return p, nil
}

func (r *ProjectDynamoRepository) GetByID(ctx context.Context, id string) (entities.Project, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Project{}, err
	}
	if len(out.Item) == 0 {
		return entities.Project{}, nil
	}

	var it projectItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Project{}, err
	}
	return fromProjectItem(it), nil
}

func (r *ProjectDynamoRepository) List(ctx context.Context) ([]entities.Project, error) {
	items := make([]entities.Project, 0)

	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it projectItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, fromProjectItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return items, nil
}

func toProjectItem(p entities.Project) projectItem {
	return projectItem{
		ID:                   p.ID,
		ProjectName:          p.ProjectName,
		Description:          p.Description,
		Amount:               p.Amount,
		Deadline:             p.Deadline.UTC().Format(time.RFC3339Nano),
		Tags:                 p.Tags,
		Difficulty:           string(p.Difficulty),
		Proposals:            p.Proposals,
		CompleteStatus:       p.CompleteStatus,
		AssignedFreelancerID: p.AssignedFreelancerID,
		CreatedAt:            p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:            p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromProjectItem(it projectItem) entities.Project {
	deadline, _ := time.Parse(time.RFC3339Nano, it.Deadline)
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Project{
		ID:                   it.ID,
		ProjectName:          it.ProjectName,
		Description:          it.Description,
		Amount:               it.Amount,
		Deadline:             deadline,
		Tags:                 it.Tags,
		Difficulty:           entities.ProjectDifficulty(it.Difficulty),
		Proposals:            it.Proposals,
		CompleteStatus:       it.CompleteStatus,
		AssignedFreelancerID: it.AssignedFreelancerID,
		CreatedAt:            createdAt,
		UpdatedAt:            updatedAt,
	}
}
