package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StoredFile describes a file persisted to one of the media buckets.
type StoredFile struct {
	ID         string    `json:"id"`          // GridFS ObjectID hex
	Bucket     string    `json:"bucket"`      // bucket the file lives in
	Filename   string    `json:"filename"`    // original client filename
	Size       int64     `json:"size"`        // size in bytes
	MimeType   string    `json:"mime_type"`   // content type reported at upload
	UploadedBy uint64    `json:"uploaded_by"` // profile ID of the uploader
	UploadedAt time.Time `json:"uploaded_at"` // upload timestamp
}

// Upload streams content into the named bucket and returns the stored file
// descriptor.  The uploader and mime type are kept as GridFS metadata so
// downloads can restore the content type without a second lookup.
func (c *Client) Upload(ctx context.Context, bucket, filename, mimeType string, uploaderID uint64, content io.Reader) (*StoredFile, error) {
	b, err := c.bucket(bucket)
	if err != nil {
		return nil, err
	}
	meta := bson.M{
		"mime_type":   mimeType,
		"uploaded_by": uploaderID,
		"uploaded_at": time.Now().UTC(),
	}
	stream, err := b.OpenUploadStream(filename, options.GridFSUpload().SetMetadata(meta))
	if err != nil {
		return nil, fmt.Errorf("open upload stream: %w", err)
	}
	size, err := io.Copy(stream, content)
	if cerr := stream.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}
	return &StoredFile{
		ID:         stream.FileID.(primitive.ObjectID).Hex(),
		Bucket:     bucket,
		Filename:   filename,
		Size:       size,
		MimeType:   mimeType,
		UploadedBy: uploaderID,
		UploadedAt: time.Now().UTC(),
	}, nil
}

// Open returns a read stream and descriptor for a stored file.  The caller
// must close the returned stream.
func (c *Client) Open(ctx context.Context, bucket, fileID string) (io.ReadCloser, *StoredFile, error) {
	b, err := c.bucket(bucket)
	if err != nil {
		return nil, nil, err
	}
	oid, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid file id: %w", err)
	}
	stream, err := b.OpenDownloadStream(oid)
	if err != nil {
		return nil, nil, fmt.Errorf("open file: %w", err)
	}

	info := stream.GetFile()
	var meta bson.M
	if info.Metadata != nil {
		_ = bson.Unmarshal(info.Metadata, &meta)
	}
	return stream, &StoredFile{
		ID:         fileID,
		Bucket:     bucket,
		Filename:   info.Name,
		Size:       info.Length,
		MimeType:   metaString(meta, "mime_type"),
		UploadedBy: metaUint(meta, "uploaded_by"),
		UploadedAt: info.UploadDate,
	}, nil
}

// Delete removes a stored file.  Used both by admin film deletion and by
// the upload flow's compensation path when a later step fails.
func (c *Client) Delete(ctx context.Context, bucket, fileID string) error {
	b, err := c.bucket(bucket)
	if err != nil {
		return err
	}
	oid, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return fmt.Errorf("invalid file id: %w", err)
	}
	return b.Delete(oid)
}

func metaString(m bson.M, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func metaUint(m bson.M, key string) uint64 {
	if m == nil {
		return 0
	}
	switch v := m[key].(type) {
	case int32:
		return uint64(v)
	case int64:
		return uint64(v)
	case float64:
		return uint64(v)
	}
	return 0
}
