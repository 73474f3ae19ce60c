package repository

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/minio/minio-go/v7"
)

// MinioStore implements BlobStore on a MinIO (or any S3-compatible) bucket
// through the minio-go client.
type MinioStore struct {
	client *minio.Client
	bucket string
}

func NewMinioStore(client *minio.Client, bucket string) *MinioStore {
	return &MinioStore{client: client, bucket: bucket}
}

func (s *MinioStore) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, unavailable("minio get "+key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if isMinioNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, unavailable("minio read "+key, err)
	}
	return data, nil
}

func (s *MinioStore) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return unavailable("minio put "+key, err)
	}
	return nil
}

func (s *MinioStore) List(ctx context.Context, prefix string) ([]Object, error) {
	objects := []Object{}
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, unavailable("minio list "+prefix, info.Err)
		}
		data, err := s.Get(ctx, info.Key)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				// deleted between listing and fetch
				continue
			}
			return nil, err
		}
		objects = append(objects, Object{Key: info.Key, Data: data})
	}
	return objects, nil
}

func (s *MinioStore) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil && !isMinioNotFound(err) {
		return unavailable("minio delete "+key, err)
	}
	return nil
}

func (s *MinioStore) DeleteAll(ctx context.Context, prefix string) (int, error) {
	var infos []minio.ObjectInfo
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return 0, unavailable("minio list "+prefix, info.Err)
		}
		infos = append(infos, info)
	}
	if len(infos) == 0 {
		return 0, nil
	}

	toDelete := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		toDelete <- info
	}
	close(toDelete)

	// RemoveObjects keeps dispatching until its input channel is consumed,
	// so the error channel must be drained to completion
	var removeErr error
	for failure := range s.client.RemoveObjects(ctx, s.bucket, toDelete, minio.RemoveObjectsOptions{}) {
		if failure.Err != nil && removeErr == nil {
			removeErr = unavailable("minio delete prefix "+prefix, failure.Err)
		}
	}
	if removeErr != nil {
		return 0, removeErr
	}
	return len(infos), nil
}

func (s *MinioStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isMinioNotFound(err) {
			return false, nil
		}
		return false, unavailable("minio stat "+key, err)
	}
	return true, nil
}

func isMinioNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == 404
}
