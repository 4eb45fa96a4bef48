package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNSAPI struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSAPI) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = in
	return &sns.PublishOutput{}, f.err
}

func TestPublishEvent_SetsBodyAndAttribute(t *testing.T) {
	api := &fakeSNSAPI{}
	c := &SNSClient{client: api}

	err := c.PublishEvent(context.Background(), "arn:topic", "seed.completed", map[string]int{"orders": 500})
	require.NoError(t, err)

	assert.Equal(t, "arn:topic", *api.input.TopicArn)
	assert.JSONEq(t, `{"orders":500}`, *api.input.Message)
	attr := api.input.MessageAttributes[EventTypeAttribute]
	assert.Equal(t, "String", *attr.DataType)
	assert.Equal(t, "seed.completed", *attr.StringValue)
}

func TestPublishEvent_Errors(t *testing.T) {
	c := &SNSClient{client: &fakeSNSAPI{err: errors.New("not authorized")}}

	assert.ErrorContains(t, c.PublishEvent(context.Background(), "", "x", nil), "empty topicArn")
	assert.ErrorContains(t, c.PublishEvent(context.Background(), "arn:topic", "x", make(chan int)), "marshal")
	assert.ErrorContains(t, c.PublishEvent(context.Background(), "arn:topic", "x", 1), "not authorized")
}
