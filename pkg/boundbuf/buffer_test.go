package boundbuf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		wantErr  error
	}{
		{name: "positive capacity", capacity: 16},
		{name: "capacity one", capacity: 1},
		{name: "zero capacity rejected", capacity: 0, wantErr: ErrInvalidCapacity},
		{name: "negative capacity rejected", capacity: -4, wantErr: ErrInvalidCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.capacity)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, b)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.capacity, b.Cap())
				assert.Equal(t, 0, b.Len())
			}
		})
	}
}

func TestBufferWriteFrom(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		src      []byte
		srcLen   int
		wantN    int
		wantData string
		wantErr  error
	}{
		{
			name:     "fits with room to spare",
			capacity: 16,
			src:      []byte("hello"),
			srcLen:   5,
			wantN:    5,
			wantData: "hello",
		},
		{
			name:     "exact fit is not truncated",
			capacity: 6,
			src:      []byte("hello"),
			srcLen:   5,
			wantN:    5,
			wantData: "hello",
		},
		{
			name:     "oversized input truncated to capacity-1",
			capacity: 4,
			src:      []byte("hello"),
			srcLen:   5,
			wantN:    3,
			wantData: "hel",
		},
		{
			name:     "zero length yields empty terminated buffer",
			capacity: 8,
			src:      []byte("ignored"),
			srcLen:   0,
			wantN:    0,
			wantData: "",
		},
		{
			name:     "nil source with zero length",
			capacity: 8,
			src:      nil,
			srcLen:   0,
			wantN:    0,
			wantData: "",
		},
		{
			name:     "partial read of source",
			capacity: 16,
			src:      []byte("hello world"),
			srcLen:   5,
			wantN:    5,
			wantData: "hello",
		},
		{
			name:     "nil source with positive length rejected",
			capacity: 8,
			src:      nil,
			srcLen:   3,
			wantErr:  ErrInvalidArgument,
		},
		{
			name:     "negative length rejected",
			capacity: 8,
			src:      []byte("x"),
			srcLen:   -1,
			wantErr:  ErrInvalidArgument,
		},
		{
			name:     "length past end of source rejected",
			capacity: 8,
			src:      []byte("abc"),
			srcLen:   4,
			wantErr:  ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.capacity)
			require.NoError(t, err)

			n, err := b.WriteFrom(tt.src, tt.srcLen)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, b.Len(), "buffer must not mutate on error")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantN, n)
			assert.Equal(t, tt.wantData, b.View().String())
			assert.Less(t, b.Len(), b.Cap(), "payload must leave room for the terminator")
		})
	}
}

func TestBufferWriteFromNeverExceedsStorage(t *testing.T) {
	// Hammer a small buffer with inputs of every length up to several
	// times its capacity; the payload must always terminate below Cap.
	const capacity = 8
	src := bytes.Repeat([]byte{0xAB}, capacity*4)

	b, err := New(capacity)
	require.NoError(t, err)

	for srcLen := 0; srcLen <= len(src); srcLen++ {
		n, err := b.WriteFrom(src, srcLen)
		require.NoError(t, err)
		assert.LessOrEqual(t, n, capacity-1)
		assert.Less(t, b.Len(), capacity)
		assert.Equal(t, n, b.Len())
	}
}

func TestBufferWriteFromDetectsTruncation(t *testing.T) {
	b, err := New(4)
	require.NoError(t, err)

	n, err := b.WriteFrom([]byte("abcdef"), 6)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "caller sees fewer bytes than requested on truncation")
	assert.Equal(t, "abc", b.View().String())
}

func TestBufferAppend(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		initial  string
		src      []byte
		wantN    int
		wantData string
		wantErr  error
	}{
		{
			name:     "append within room",
			capacity: 16,
			initial:  "foo",
			src:      []byte("bar"),
			wantN:    3,
			wantData: "foobar",
		},
		{
			name:     "append truncated at capacity-1",
			capacity: 6,
			initial:  "foo",
			src:      []byte("barbaz"),
			wantN:    2,
			wantData: "fooba",
		},
		{
			name:     "append to full buffer copies nothing",
			capacity: 4,
			initial:  "foo",
			src:      []byte("x"),
			wantN:    0,
			wantData: "foo",
		},
		{
			name:     "empty append is a no-op",
			capacity: 8,
			initial:  "foo",
			src:      []byte{},
			wantN:    0,
			wantData: "foo",
		},
		{
			name:     "nil source rejected",
			capacity: 8,
			initial:  "foo",
			src:      nil,
			wantErr:  ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.capacity)
			require.NoError(t, err)
			_, err = b.WriteFrom([]byte(tt.initial), len(tt.initial))
			require.NoError(t, err)

			n, err := b.Append(tt.src)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.initial, b.View().String(), "buffer must not mutate on error")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantN, n)
			assert.Equal(t, tt.wantData, b.View().String())
			assert.Less(t, b.Len(), b.Cap())
		})
	}
}

func TestBufferReset(t *testing.T) {
	b, err := New(8)
	require.NoError(t, err)
	_, err = b.WriteFrom([]byte("data"), 4)
	require.NoError(t, err)

	b.Reset()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 8, b.Cap(), "capacity is fixed at construction")
	assert.Equal(t, "", b.View().String())
}
