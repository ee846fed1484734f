package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"kids-activity-normalizer/internal/models"
)

// ActivityItem is a canonical activity as stored in the activities table,
// keyed by (provider, externalId) so re-normalized records upsert
// deterministically regardless of processing order.
type ActivityItem struct {
	// Primary Keys
	PK string `json:"PK" dynamodbav:"PK"` // PROVIDER#{providerId}
	SK string `json:"SK" dynamodbav:"SK"` // ACTIVITY#{externalId}

	ProviderID string                   `json:"provider_id" dynamodbav:"provider_id"`
	Activity   models.CanonicalActivity `json:"activity" dynamodbav:"activity"`

	// Lifecycle managed by the ingestion layer, not the normalizer
	Status     string    `json:"status" dynamodbav:"status"` // active|inactive
	CreatedAt  time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" dynamodbav:"updated_at"`
	LastSeenAt time.Time `json:"last_seen_at" dynamodbav:"last_seen_at"`

	// GSI key for querying a provider's activities by status
	ProviderStatusKey string `json:"ProviderStatusKey,omitempty" dynamodbav:"ProviderStatusKey,omitempty"` // PROVIDER#{providerId}#STATUS#{status}
}

// CreateActivityPK builds the partition key for a provider
func CreateActivityPK(providerID string) string {
	return "PROVIDER#" + providerID
}

// CreateActivitySK builds the sort key for an activity
func CreateActivitySK(externalID string) string {
	return "ACTIVITY#" + externalID
}

// GenerateProviderStatusKey builds the provider-status GSI key
func GenerateProviderStatusKey(providerID, status string) string {
	return fmt.Sprintf("PROVIDER#%s#STATUS#%s", providerID, status)
}

// DynamoDBService is the ingestion layer: it consumes canonical activities
// and performs insert-or-update against the activities table.
type DynamoDBService struct {
	client          *dynamodb.Client
	activitiesTable string
}

// NewDynamoDBService creates a new DynamoDB service instance
func NewDynamoDBService(client *dynamodb.Client, activitiesTable string) *DynamoDBService {
	return &DynamoDBService{
		client:          client,
		activitiesTable: activitiesTable,
	}
}

// UpsertActivity inserts or updates one canonical activity keyed by
// (provider, externalId). CreatedAt is preserved across updates; UpdatedAt
// and LastSeenAt always advance.
func (s *DynamoDBService) UpsertActivity(ctx context.Context, providerID string, activity *models.CanonicalActivity) error {
	now := time.Now()

	item := &ActivityItem{
		PK:         CreateActivityPK(providerID),
		SK:         CreateActivitySK(activity.ExternalID),
		ProviderID: providerID,
		Activity:   *activity,
		Status:     models.ActivityStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
		LastSeenAt: now,
	}

	existing, err := s.GetActivity(ctx, providerID, activity.ExternalID)
	if err == nil && existing != nil {
		item.CreatedAt = existing.CreatedAt
	}

	item.ProviderStatusKey = GenerateProviderStatusKey(providerID, item.Status)

	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal activity item: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.activitiesTable),
		Item:      marshaled,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert activity %s/%s: %w", providerID, activity.ExternalID, err)
	}

	return nil
}

// UpsertBatch upserts a batch of canonical activities and returns the
// external IDs seen, for use with MarkMissingInactive.
func (s *DynamoDBService) UpsertBatch(ctx context.Context, providerID string, activities []models.CanonicalActivity) (map[string]bool, []error) {
	seen := make(map[string]bool, len(activities))
	var errs []error

	for i := range activities {
		if err := s.UpsertActivity(ctx, providerID, &activities[i]); err != nil {
			errs = append(errs, err)
			continue
		}
		seen[activities[i].ExternalID] = true
	}

	return seen, errs
}

// GetActivity retrieves one activity by its (provider, externalId) key
func (s *DynamoDBService) GetActivity(ctx context.Context, providerID, externalID string) (*ActivityItem, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.activitiesTable),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: CreateActivityPK(providerID)},
			"SK": &types.AttributeValueMemberS{Value: CreateActivitySK(externalID)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("activity %s/%s not found", providerID, externalID)
	}

	var item ActivityItem
	err = attributevalue.UnmarshalMap(result.Item, &item)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal activity item: %w", err)
	}

	return &item, nil
}

// QueryActivitiesByProvider returns all stored activities for a provider
func (s *DynamoDBService) QueryActivitiesByProvider(ctx context.Context, providerID string, limit int32) ([]ActivityItem, error) {
	result, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.activitiesTable),
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: CreateActivityPK(providerID)},
		},
		Limit: aws.Int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query activities by provider: %w", err)
	}

	var items []ActivityItem
	err = attributevalue.UnmarshalListOfMaps(result.Items, &items)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal activity items: %w", err)
	}

	return items, nil
}

// MarkMissingInactive flips activities that were not seen in the latest
// batch to inactive. Records a provider no longer lists stop appearing in
// search without being deleted.
func (s *DynamoDBService) MarkMissingInactive(ctx context.Context, providerID string, seen map[string]bool) (int, error) {
	items, err := s.QueryActivitiesByProvider(ctx, providerID, 1000)
	if err != nil {
		return 0, err
	}

	marked := 0
	for i := range items {
		item := &items[i]
		if item.Status != models.ActivityStatusActive {
			continue
		}
		if seen[item.Activity.ExternalID] {
			continue
		}

		item.Status = models.ActivityStatusInactive
		item.UpdatedAt = time.Now()
		item.ProviderStatusKey = GenerateProviderStatusKey(providerID, item.Status)

		marshaled, err := attributevalue.MarshalMap(item)
		if err != nil {
			return marked, fmt.Errorf("failed to marshal activity item: %w", err)
		}

		_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(s.activitiesTable),
			Item:      marshaled,
		})
		if err != nil {
			return marked, fmt.Errorf("failed to mark activity inactive: %w", err)
		}
		marked++
	}

	return marked, nil
}

// DeleteActivity removes one activity permanently
func (s *DynamoDBService) DeleteActivity(ctx context.Context, providerID, externalID string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.activitiesTable),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: CreateActivityPK(providerID)},
			"SK": &types.AttributeValueMemberS{Value: CreateActivitySK(externalID)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	return nil
}
