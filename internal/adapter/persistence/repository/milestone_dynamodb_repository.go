package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"freework/internal/domain/entities"
	"freework/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultMilestonesTableName = "milestones"
	milestonesProjectIDIndex   = "project_id-index"
)

type milestoneItem struct {
	ID           string  `dynamodbav:"id"`
	ProjectID    string  `dynamodbav:"project_id"`
	EmployerID   string  `dynamodbav:"employer_id"`
	Title        string  `dynamodbav:"title"`
	Amount       float64 `dynamodbav:"amount"`
	Status       string  `dynamodbav:"status"`
	Submission   string  `dynamodbav:"submission,omitempty"`
	EscrowFunded bool    `dynamodbav:"escrow_funded"`
	LinkRef      string  `dynamodbav:"link_ref,omitempty"`
	TransferRef  string  `dynamodbav:"transfer_ref,omitempty"`
	TransferID   string  `dynamodbav:"transfer_id,omitempty"`
	CreatedAt    string  `dynamodbav:"created_at"`
	UpdatedAt    string  `dynamodbav:"updated_at"`
}

// MilestoneDynamoRepository persists Milestone entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: project_id-index (PK: project_id)
//
// Status transitions go through a conditional UpdateItem so the second of two
// concurrent identical transitions fails the condition instead of repeating a
// side effect.

type MilestoneDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IMilestoneRepository = (*MilestoneDynamoRepository)(nil)

func NewMilestoneDynamoRepository(ddb *dynamodb.Client) *MilestoneDynamoRepository {
	return &MilestoneDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("MILESTONES_TABLE", defaultMilestonesTableName),
	}
}

func (r *MilestoneDynamoRepository) Create(ctx context.Context, m entities.Milestone) (entities.Milestone, error) {
	it := toMilestoneItem(m)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Milestone{}, err
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
		return entities.Milestone{}, err
	}
	return m, nil
}

func (r *MilestoneDynamoRepository) GetByID(ctx context.Context, id string) (entities.Milestone, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Milestone{}, err
	}
	if len(out.Item) == 0 {
		return entities.Milestone{}, nil
	}

	var it milestoneItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Milestone{}, err
	}
	return fromMilestoneItem(it), nil
}

func (r *MilestoneDynamoRepository) ListByProjectID(ctx context.Context, projectID string) ([]entities.Milestone, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(milestonesProjectIDIndex),
		KeyConditionExpression: aws.String("project_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: projectID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Milestone, 0, len(out.Items))
	for _, raw := range out.Items {
		var it milestoneItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromMilestoneItem(it))
	}
	return items, nil
}

func (r *MilestoneDynamoRepository) TransitionStatus(ctx context.Context, id string, from []entities.MilestoneStatus, to entities.MilestoneStatus) (entities.Milestone, error) {
	return r.update(ctx, id, from, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :to, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":to":         &types.AttributeValueMemberS{Value: string(to)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *MilestoneDynamoRepository) SubmitWork(ctx context.Context, id string, from []entities.MilestoneStatus, submission string) (entities.Milestone, error) {
	return r.update(ctx, id, from, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :to, #submission = :submission, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":to":         &types.AttributeValueMemberS{Value: string(entities.MilestoneStatusSubmitted)},
			":submission": &types.AttributeValueMemberS{Value: submission},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#submission": "submission",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *MilestoneDynamoRepository) MarkFunded(ctx context.Context, id string) (entities.Milestone, error) {
	from := []entities.MilestoneStatus{entities.MilestoneStatusApproved}
	return r.update(ctx, id, from, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :to, #escrow_funded = :funded, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":to":         &types.AttributeValueMemberS{Value: string(entities.MilestoneStatusFunded)},
			":funded":     &types.AttributeValueMemberBOOL{Value: true},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":        "status",
			"#escrow_funded": "escrow_funded",
			"#updated_at":    "updated_at",
		}
		return expr, vals, names
	})
}

func (r *MilestoneDynamoRepository) RecordWithdrawal(ctx context.Context, id, transferID string) (entities.Milestone, error) {
	from := []entities.MilestoneStatus{entities.MilestoneStatusFunded}
	return r.update(ctx, id, from, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :to, #transfer_id = :transfer_id, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":to":          &types.AttributeValueMemberS{Value: string(entities.MilestoneStatusWithdrawn)},
			":transfer_id": &types.AttributeValueMemberS{Value: transferID},
			":updated_at":  &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":      "status",
			"#transfer_id": "transfer_id",
			"#updated_at":  "updated_at",
		}
		return expr, vals, names
	})
}

func (r *MilestoneDynamoRepository) AssignLinkRef(ctx context.Context, id, ref string) (string, error) {
	m, err := r.assignRef(ctx, id, "link_ref", ref)
	if err != nil {
		return "", err
	}
	return m.LinkRef, nil
}

func (r *MilestoneDynamoRepository) AssignTransferRef(ctx context.Context, id, ref string) (string, error) {
	m, err := r.assignRef(ctx, id, "transfer_ref", ref)
	if err != nil {
		return "", err
	}
	return m.TransferRef, nil
}

// assignRef stores ref under attr unless a value is already present, and
// returns the item as persisted. This is what makes a retried gateway call
// reuse the original external reference.
func (r *MilestoneDynamoRepository) assignRef(ctx context.Context, id, attr, ref string) (entities.Milestone, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #ref = if_not_exists(#ref, :ref), #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref":        &types.AttributeValueMemberS{Value: ref},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		},
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#ref":        attr,
			"#updated_at": "updated_at",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Milestone{}, nil
		}
		return entities.Milestone{}, err
	}

	var it milestoneItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Milestone{}, err
	}
	return fromMilestoneItem(it), nil
}

func (r *MilestoneDynamoRepository) update(
	ctx context.Context,
	id string,
	from []entities.MilestoneStatus,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Milestone, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	updateExpr, values, names := build(now)

	condition, condValues := statusCondition(from)
	for k, v := range condValues {
		values[k] = v
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(condition),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id", "#status": "status"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Milestone{}, nil
		}
		return entities.Milestone{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Milestone{}, nil
	}
	var it milestoneItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Milestone{}, err
	}
	return fromMilestoneItem(it), nil
}

// statusCondition builds "attribute_exists(#id) AND #status IN (:from0, ...)".
func statusCondition(from []entities.MilestoneStatus) (string, map[string]types.AttributeValue) {
	placeholders := make([]string, 0, len(from))
	values := make(map[string]types.AttributeValue, len(from))
	for i, s := range from {
		ph := fmt.Sprintf(":from%d", i)
		placeholders = append(placeholders, ph)
		values[ph] = &types.AttributeValueMemberS{Value: string(s)}
	}
	return "attribute_exists(#id) AND #status IN (" + strings.Join(placeholders, ", ") + ")", values
}

func toMilestoneItem(m entities.Milestone) milestoneItem {
	return milestoneItem{
		ID:           m.ID,
		ProjectID:    m.ProjectID,
		EmployerID:   m.EmployerID,
		Title:        m.Title,
		Amount:       m.Amount,
		Status:       string(m.Status),
		Submission:   m.Submission,
		EscrowFunded: m.EscrowFunded,
		LinkRef:      m.LinkRef,
		TransferRef:  m.TransferRef,
		TransferID:   m.TransferID,
		CreatedAt:    m.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:    m.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromMilestoneItem(it milestoneItem) entities.Milestone {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Milestone{
		ID:           it.ID,
		ProjectID:    it.ProjectID,
		EmployerID:   it.EmployerID,
		Title:        it.Title,
		Amount:       it.Amount,
		Status:       entities.MilestoneStatus(it.Status),
		Submission:   it.Submission,
		EscrowFunded: it.EscrowFunded,
		LinkRef:      it.LinkRef,
		TransferRef:  it.TransferRef,
		TransferID:   it.TransferID,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}
