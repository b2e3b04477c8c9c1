package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-email-confirm/internal/domain"
)

// UserRepo provides typed DynamoDB operations for the users table.
type UserRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewUserRepo(client *dynamodb.Client, tableName string) *UserRepo {
	return &UserRepo{client: client, tableName: tableName}
}

// Get reads the user record by primary key. Record creation belongs to the
// signup service; this service only reads and conditionally updates.
func (r *UserRepo) Get(ctx context.Context, userID string) (*domain.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("user_id", userID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	var u domain.User
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("user_id", userID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

// ConfirmEmail stamps email_confirmed_at and removes the confirmation token
// fields in a single conditional write. The condition makes the transition
// exactly-once: when two requests race, the store accepts one and fails the
// other with ConditionalCheckFailedException, surfaced as domain.ErrConflict.
func (r *UserRepo) ConfirmEmail(ctx context.Context, userID string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("user_id", userID),
		UpdateExpression: aws.String(
			"SET #confirmed = :now, #updated = :now, #revoked = :f REMOVE #token, #expires"),
		ConditionExpression: aws.String("attribute_exists(user_id) AND attribute_not_exists(#confirmed)"),
		ExpressionAttributeNames: map[string]string{
			"#confirmed": fieldEmailConfirmedAt,
			"#updated":   fieldUpdatedAt,
			"#revoked":   fieldConfirmationRevoked,
			"#token":     fieldConfirmationToken,
			"#expires":   fieldConfirmationExpiresAt,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberS{Value: now},
			":f":   &types.AttributeValueMemberBOOL{Value: false},
		},
	})
	if err != nil {
		var ccfe *types.ConditionalCheckFailedException
		if errors.As(err, &ccfe) {
			return fmt.Errorf("email already confirmed: %w", domain.ErrConflict)
		}
		return err
	}
	return nil
}

// SetConfirmationToken writes a fresh token and expiry onto the user record,
// replacing any previous token and clearing a prior revocation.
func (r *UserRepo) SetConfirmationToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	return r.Update(ctx, userID, map[string]interface{}{
		fieldConfirmationToken:     token,
		fieldConfirmationExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		fieldConfirmationRevoked:   false,
	})
}

// RevokeConfirmationToken marks the outstanding token as revoked without
// removing it, so a later attempt classifies as revoked rather than tampered.
func (r *UserRepo) RevokeConfirmationToken(ctx context.Context, userID string) error {
	return r.Update(ctx, userID, map[string]interface{}{
		fieldConfirmationRevoked: true,
	})
}
