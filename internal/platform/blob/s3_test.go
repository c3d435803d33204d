// Copyright (c) 2026 Funtush. All rights reserved.

package blob_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/blob"
)

type recordingPutter struct {
	input   *s3.PutObjectInput
	payload string
	err     error
}

func (putter *recordingPutter) PutObject(_ context.Context, input *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	putter.input = input
	body, _ := io.ReadAll(input.Body)
	putter.payload = string(body)
	return &s3.PutObjectOutput{}, putter.err
}

/*
TestS3Uploader_Upload sends the object and builds the public URL per configuration.
*/
func TestS3Uploader_Upload(t *testing.T) {
	tests := []struct {
		name    string
		cfg     blob.S3Config
		wantURL string
	}{
		{
			name:    "aws virtual host",
			cfg:     blob.S3Config{Bucket: "posters", Region: "eu-west-1"},
			wantURL: "https://posters.s3.eu-west-1.amazonaws.com/a.png",
		},
		{
			name:    "custom endpoint",
			cfg:     blob.S3Config{Bucket: "posters", Endpoint: "http://minio:9000/"},
			wantURL: "http://minio:9000/posters/a.png",
		},
		{
			name:    "public base url wins",
			cfg:     blob.S3Config{Bucket: "posters", Endpoint: "http://minio:9000", PublicBaseURL: "https://cdn.funtush.app/"},
			wantURL: "https://cdn.funtush.app/a.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			putter := &recordingPutter{}
			uploader := blob.NewS3UploaderWithClient(putter, tt.cfg)

			url, err := uploader.Upload(context.Background(), "a.png", strings.NewReader("png"), 3, "image/png")
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, url)

			assert.Equal(t, "posters", aws.ToString(putter.input.Bucket))
			assert.Equal(t, "a.png", aws.ToString(putter.input.Key))
			assert.Equal(t, "image/png", aws.ToString(putter.input.ContentType))
			assert.Equal(t, int64(3), aws.ToInt64(putter.input.ContentLength))
			assert.Equal(t, "png", putter.payload)
		})
	}
}

/*
TestS3Uploader_Failure wraps the store error.
*/
func TestS3Uploader_Failure(t *testing.T) {
	cause := errors.New("access denied")
	uploader := blob.NewS3UploaderWithClient(&recordingPutter{err: cause}, blob.S3Config{Bucket: "posters"})

	_, err := uploader.Upload(context.Background(), "a.png", strings.NewReader("x"), 1, "image/png")
	assert.ErrorIs(t, err, cause)
}

/*
TestDisabled_Upload reports the missing configuration.
*/
func TestDisabled_Upload(t *testing.T) {
	_, err := blob.Disabled{}.Upload(context.Background(), "a.png", strings.NewReader("x"), 1, "image/png")
	assert.True(t, apperr.HasCode(err, apperr.CodeServiceUnavailable))
}
