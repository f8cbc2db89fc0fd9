package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresigner struct {
	key, contentType string
	err              error
}

func (f *fakePresigner) PresignPut(_ context.Context, key, contentType string) (string, error) {
	f.key, f.contentType = key, contentType
	if f.err != nil {
		return "", f.err
	}
	return "https://bucket.s3.amazonaws.com/" + key + "?X-Amz-Signature=abc", nil
}

var uploadTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("IST", 19800))

func TestKey(t *testing.T) {
	assert.Equal(t, "docs/1704144845000-my-file.pdf", Key("docs", "My File.pdf", uploadTime))
}

func TestIssue(t *testing.T) {
	testCases := []struct {
		name        string
		in          Upload
		wantPrefix  string
		wantSuffix  string
		contentType string
	}{
		{
			name:        "explicit fields",
			in:          Upload{Folder: "pancards", FileName: "Résumé & Co.png", ContentType: "image/png"},
			wantPrefix:  "pancards/1704144845000-",
			wantSuffix:  "resume-and-co.png",
			contentType: "image/png",
		},
		{
			name:        "defaults",
			in:          Upload{},
			wantPrefix:  "images/1704144845000-",
			wantSuffix:  ".jpg",
			contentType: "image/jpeg",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := &fakePresigner{}
			ticket, err := Issue(context.Background(), p, tc.in, uploadTime)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(ticket.Key, tc.wantPrefix), ticket.Key)
			assert.True(t, strings.HasSuffix(ticket.Key, tc.wantSuffix), ticket.Key)
			assert.Equal(t, ticket.Key, p.key)
			assert.Equal(t, tc.contentType, p.contentType)
			assert.Contains(t, ticket.UploadURL, ticket.Key)
		})
	}
}

func TestIssuePropagatesSigningError(t *testing.T) {
	_, err := Issue(context.Background(), &fakePresigner{err: errors.New("no credentials")}, Upload{}, uploadTime)
	assert.Error(t, err)
}
