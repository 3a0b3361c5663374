// Package storage provides the object store for uploaded media.  Files live
// in MongoDB GridFS, one bucket per media class: avatars, film thumbnails
// and film videos.  The relational database only carries the public URLs.
package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Bucket names.  They mirror the storage layout the media URLs expose:
// /v1/media/<bucket>/<id>.
const (
	BucketAvatars    = "avatars"
	BucketThumbnails = "film-thumbnails"
	BucketVideos     = "film-videos"
)

// Client wraps the Mongo connection and one GridFS bucket per media class.
type Client struct {
	mongo   *mongo.Client
	buckets map[string]*gridfs.Bucket
}

// Connect opens the Mongo connection, pings it and prepares the three
// media buckets.  A nil Client and an error are returned when the server
// is unreachable; media endpoints cannot operate without it.
func Connect(uri, dbName string) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect media store: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping media store: %w", err)
	}

	db := client.Database(dbName)
	buckets := make(map[string]*gridfs.Bucket, 3)
	for _, name := range []string{BucketAvatars, BucketThumbnails, BucketVideos} {
		b, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(name))
		if err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", name, err)
		}
		buckets[name] = b
	}
	return &Client{mongo: client, buckets: buckets}, nil
}

// Close disconnects from the media store.
func (c *Client) Close(ctx context.Context) error {
	return c.mongo.Disconnect(ctx)
}

// bucket returns the GridFS bucket for a known bucket name.
func (c *Client) bucket(name string) (*gridfs.Bucket, error) {
	b, ok := c.buckets[name]
	if !ok {
		return nil, fmt.Errorf("unknown bucket: %s", name)
	}
	return b, nil
}

// KnownBucket reports whether name is one of the media buckets.  Used by
// the media handler to reject arbitrary path segments.
func KnownBucket(name string) bool {
	switch name {
	case BucketAvatars, BucketThumbnails, BucketVideos:
		return true
	}
	return false
}
