package kvstore

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"lumiere-storefront/pkg/kvstore"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectAPI struct {
	mu      sync.Mutex
	objects map[string]string
	putErr  error
}

func newFakeObjectAPI() *fakeObjectAPI {
	return &fakeObjectAPI{objects: make(map[string]string)}
}

func (f *fakeObjectAPI) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("not found")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (f *fakeObjectAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = string(data)
	return &s3.PutObjectOutput{}, nil
}

func TestR2Store_RoundTrip(t *testing.T) {
	api := newFakeObjectAPI()
	store := NewR2Store(api, "bucket", "storefront", time.Second)

	_, err := store.Get("lumiere-wishlist")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)

	require.NoError(t, store.Set("lumiere-wishlist", "[]"))
	assert.Contains(t, api.objects, "bucket/storefront/lumiere-wishlist")

	got, err := store.Get("lumiere-wishlist")
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
}

func TestR2Store_PutError(t *testing.T) {
	api := newFakeObjectAPI()
	api.putErr = errors.New("quota exceeded")
	store := NewR2Store(api, "bucket", "", time.Second)

	err := store.Set("k", "v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}
