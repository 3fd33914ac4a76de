// Package storage provides object storage access for waiver documents.
//
// It wraps the Minio S3 client behind a small Client interface so features
// and tests can swap in mocks (see the mocks subpackage). The waiver pool
// lives under a configurable bucket/prefix; merged output documents can be
// uploaded back to the same bucket.
package storage
