package playback_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/burhanahmeed/tempo/internal/playback"
)

func TestParseVideoID(t *testing.T) {
	cases := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "short link",
			url:  "https://youtu.be/abc123",
			want: "abc123",
		},
		{
			name: "watch link",
			url:  "https://www.youtube.com/watch?v=abc123",
			want: "abc123",
		},
		{
			name: "watch link without www",
			url:  "https://youtube.com/watch?v=abc123",
			want: "abc123",
		},
		{
			name: "watch link with trailing params",
			url:  "https://www.youtube.com/watch?v=abc123&t=5",
			want: "abc123",
		},
		{
			name: "watch link with preceding params",
			url:  "https://www.youtube.com/watch?t=30&v=abc123",
			want: "abc123",
		},
		{
			name: "embed link",
			url:  "https://www.youtube.com/embed/abc123",
			want: "abc123",
		},
		{
			name: "id with dash and underscore",
			url:  "https://youtu.be/a-b_c123",
			want: "a-b_c123",
		},
		{
			name: "trailing query ignored",
			url:  "https://youtu.be/abc123?t=30",
			want: "abc123",
		},
		{
			name:    "unrelated host",
			url:     "https://example.com/watch?v=abc123",
			wantErr: true,
		},
		{
			name:    "bare video id",
			url:     "abc123",
			wantErr: true,
		},
		{
			name:    "empty string",
			url:     "",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := playback.ParseVideoID(tc.url)

			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
