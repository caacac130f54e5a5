package service_test

import (
	"io"
	"sync"

	"github.com/stretchr/testify/mock"

	"carbex/internal/port"
	"carbex/mocks"
)

// uploadCapture records every object written to a mock storage.
type uploadCapture struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (c *uploadCapture) get(key string) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.objects[key]
}

func (c *uploadCapture) only() (string, []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range c.objects {
		return k, v
	}
	return "", nil
}

func captureUploads(storage *mocks.MockObjectStorage) *uploadCapture {
	c := &uploadCapture{objects: map[string][]byte{}, types: map[string]string{}}
	storage.On("Upload", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			in := args.Get(1).(port.UploadInput)
			data, _ := io.ReadAll(in.Body)
			c.mu.Lock()
			c.objects[in.Key] = data
			c.types[in.Key] = in.ContentType
			c.mu.Unlock()
		}).
		Return(&port.UploadOutput{Location: "s3://bucket/key"}, nil)
	return c
}
