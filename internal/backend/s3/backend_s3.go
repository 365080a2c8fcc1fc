// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package s3 probes state held in an S3 bucket.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	awsx "github.com/tfbq/tfbq/internal/aws"
	"github.com/tfbq/tfbq/internal/decl"
	"github.com/tfbq/tfbq/internal/log"
	"github.com/tfbq/tfbq/internal/probe"
)

type BackendS3 struct {
	Ctx               context.Context
	Cmd               *cli.Command
	RootDir           string
	WorkspaceOverride string
	RegionOverride    string
	Endpoint          string
	Decl              *decl.Declaration
}

func (be *BackendS3) Declaration() *decl.Declaration {
	return be.Decl
}

func (be *BackendS3) Kind() decl.Kind {
	return decl.KindS3
}

// StateKey returns the object key holding the active workspace's state.
// Non-default workspaces live under the env:/ prefix, matching how Terraform
// lays out workspace state in the bucket.
func (be *BackendS3) StateKey() string {
	ws := be.workspace()
	if ws == "" || ws == "default" {
		return be.Decl.Key
	}
	return path.Join("env:", ws, be.Decl.Key)
}

func (be *BackendS3) String() string {
	return "s3://" + be.Decl.Bucket + "/" + be.StateKey()
}

// Probe heads the state object and, when peek is set, fetches the body and
// reports its serial, lineage and terraform_version. A missing object is not
// an error; the result just carries Exists=false.
func (be *BackendS3) Probe(peek bool) (*probe.Result, error) {
	key := be.StateKey()
	result := &probe.Result{Location: "s3://" + be.Decl.Bucket + "/" + key}

	region := be.Decl.Region
	if be.RegionOverride != "" {
		region = be.RegionOverride
	}

	var cfgOpts []awsx.Option
	if region != "" {
		cfgOpts = append(cfgOpts, awsx.WithRegion(region))
	}
	cfg, err := awsx.LoadConfig(be.Ctx, cfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var svcOpts []awsx.Option
	if be.Endpoint != "" {
		svcOpts = append(svcOpts, awsx.WithEndpoint(be.Endpoint))
	}
	svc := awsx.NewS3(cfg, svcOpts...)

	head, err := svc.HeadObject(be.Ctx, &s3v2.HeadObjectInput{
		Bucket: awsv2.String(be.Decl.Bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			log.Debugf("probe miss: %s", result.Location)
			return result, nil
		}
		return nil, fmt.Errorf("failed to probe %s: %w", result.Location, err)
	}

	result.Exists = true
	result.Size = awsv2.ToInt64(head.ContentLength)
	if head.LastModified != nil {
		result.Modified = *head.LastModified
	}

	if !peek {
		return result, nil
	}

	body, cached, err := be.stateBody(svc, key, awsv2.ToString(head.VersionId))
	if err != nil {
		return nil, err
	}

	doc := gjson.ParseBytes(body)
	result.Serial = doc.Get("serial").Int()
	result.Lineage = doc.Get("lineage").String()
	result.TerraformVersion = doc.Get("terraform_version").String()
	result.Cached = cached
	result.Raw = body

	return result, nil
}

// stateBody fetches the state document, going through the cache when the
// bucket is versioned. Version ids are immutable so a cached body keyed by
// version id never goes stale.
func (be *BackendS3) stateBody(svc *s3v2.Client, key, versionID string) ([]byte, bool, error) {
	if err := PurgeCache(); err != nil {
		log.WithError(err).Warn("failed to purge cache")
	}

	if versionID != "" {
		if entry, ok := CacheReader(be, versionID); ok {
			return entry.Data, true, nil
		}
	}

	input := &s3v2.GetObjectInput{
		Bucket: awsv2.String(be.Decl.Bucket),
		Key:    awsv2.String(key),
	}
	if versionID != "" {
		input.VersionId = awsv2.String(versionID)
	}

	obj, err := svc.GetObject(be.Ctx, input)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get S3 object: %w", err)
	}
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read S3 object body: %w", err)
	}

	if versionID != "" {
		if err := CacheWriter(be, versionID, data); err != nil {
			log.WithError(err).Error("error writing to cache")
		}
	}

	return data, false, nil
}

// workspace resolves the active workspace. An explicit override (rootdir
// ::workspace suffix or --workspace) wins; otherwise the .terraform/environment
// marker left by `terraform workspace select` is consulted.
func (be *BackendS3) workspace() string {
	if be.WorkspaceOverride != "" {
		return be.WorkspaceOverride
	}
	data, err := os.ReadFile(filepath.Join(be.RootDir, ".terraform", "environment"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
