package storage

import (
	"context"
	"fmt"
	"io"
	"os"

	"group_service/pkg/utils"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// PhotoStore is the object-store collaborator for group photos. Uploads land
// under a temporary key; once the group row exists the object is promoted to
// its permanent key derived from the group id.
type PhotoStore interface {
	UploadTemp(ctx context.Context, reader io.Reader, size int64, contentType string) (string, error)
	Promote(ctx context.Context, tempKey string, groupID int64) (string, error)
}

type MinIOClient struct {
	client *minio.Client
	bucket string
}

var _ PhotoStore = (*MinIOClient)(nil)

func NewMinIOClient() (*MinIOClient, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	bucket := os.Getenv("MINIO_BUCKET")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinIOClient{client: client, bucket: bucket}, nil
}

func (m *MinIOClient) UploadTemp(ctx context.Context, reader io.Reader, size int64, contentType string) (string, error) {
	objectName := "tmp/" + uuid.New().String() + ".png"

	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		utils.Logger.Errorf("failed to upload %s to bucket %s: %v", objectName, m.bucket, err)
		return "", err
	}

	utils.Logger.Infof("uploaded temporary photo %s", objectName)
	return objectName, nil
}

// Promote copies the temporary object to the permanent per-group key and
// removes the temporary one. The temp removal is best effort: a leftover
// tmp/ object is harmless, a missing permanent one is not.
func (m *MinIOClient) Promote(ctx context.Context, tempKey string, groupID int64) (string, error) {
	permanentKey := fmt.Sprintf("groups/%d_photo.png", groupID)

	_, err := m.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: m.bucket, Object: permanentKey},
		minio.CopySrcOptions{Bucket: m.bucket, Object: tempKey},
	)
	if err != nil {
		utils.Logger.Errorf("failed to promote %s to %s: %v", tempKey, permanentKey, err)
		return "", err
	}

	if err := m.client.RemoveObject(ctx, m.bucket, tempKey, minio.RemoveObjectOptions{}); err != nil {
		utils.Logger.Warnf("failed to remove temporary photo %s: %v", tempKey, err)
	}

	return permanentKey, nil
}
