package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/hupe1980/sptensor"
	"github.com/hupe1980/sptensor/blobstore"
	minioblob "github.com/hupe1980/sptensor/blobstore/minio"
	s3blob "github.com/hupe1980/sptensor/blobstore/s3"
	"github.com/hupe1980/sptensor/kv"
	"github.com/hupe1980/sptensor/metric/prom"
	"github.com/hupe1980/sptensor/tensorio"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

// app holds the state shared by all subcommands.
type app struct {
	verbose         bool
	storeKind       string
	branchingFactor int
	metricsOut      string

	s3Bucket      string
	s3Prefix      string
	s3Region      string
	s3Endpoint    string
	minioEndpoint string
	minioBucket   string
	minioAccess   string
	minioSecret   string
	minioTLS      bool

	logger    *sptensor.Logger
	registry  *prometheus.Registry
	collector *prom.Collector
	blobs     blobstore.BlobStore
	kind      kv.Kind
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "sptensor",
		Short: "Sparse tensor toolkit",
		Long: `sptensor stores sparse tensors of up to four axes and computes
traces and contractions over them. Tensors are read from and written to
COO text or JSON snapshots, optionally zstd or lz4 compressed, on the local
disk, S3 or MinIO.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	f := root.PersistentFlags()
	f.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	f.StringVar(&a.storeKind, "store", kv.KindBPTree.String(), "backing store: bptree, ordered or hash")
	f.IntVar(&a.branchingFactor, "branching", kv.DefaultBranchingFactor, "B+Tree branching factor")
	f.StringVar(&a.metricsOut, "metrics-out", "", "write Prometheus metrics to this file after the command (- for stdout)")
	f.StringVar(&a.s3Bucket, "s3-bucket", "", "read and write tensors in this S3 bucket")
	f.StringVar(&a.s3Prefix, "s3-prefix", "", "key prefix inside the S3 bucket")
	f.StringVar(&a.s3Region, "s3-region", "", "S3 region (defaults to the AWS configuration)")
	f.StringVar(&a.s3Endpoint, "s3-endpoint", "", "custom S3 endpoint")
	f.StringVar(&a.minioEndpoint, "minio-endpoint", "", "read and write tensors on this MinIO server")
	f.StringVar(&a.minioBucket, "minio-bucket", "", "MinIO bucket")
	f.StringVar(&a.minioAccess, "minio-access-key", os.Getenv("MINIO_ACCESS_KEY"), "MinIO access key")
	f.StringVar(&a.minioSecret, "minio-secret-key", os.Getenv("MINIO_SECRET_KEY"), "MinIO secret key")
	f.BoolVar(&a.minioTLS, "minio-tls", false, "use HTTPS for MinIO")

	root.AddCommand(
		newInfoCmd(a),
		newTraceCmd(a),
		newContractCmd(a),
		newGenCmd(a),
		newConvertCmd(a),
		newCompareCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = sptensor.NewLogger(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	kind, err := kv.ParseKind(a.storeKind)
	if err != nil {
		return err
	}
	a.kind = kind

	a.registry = prometheus.NewRegistry()
	a.collector = prom.New(a.registry)

	switch {
	case a.s3Bucket != "" && a.minioEndpoint != "":
		return fmt.Errorf("--s3-bucket and --minio-endpoint are mutually exclusive")
	case a.s3Bucket != "":
		var opts []func(o *s3blob.Options)
		opts = append(opts, s3blob.WithPrefix(a.s3Prefix))
		if a.s3Region != "" {
			opts = append(opts, s3blob.WithRegion(a.s3Region))
		}
		if a.s3Endpoint != "" {
			opts = append(opts, s3blob.WithEndpoint(a.s3Endpoint))
		}
		store, err := s3blob.New(cmd.Context(), a.s3Bucket, opts...)
		if err != nil {
			return err
		}
		a.blobs = store
		a.logger.Debug("using s3 blob store", "bucket", a.s3Bucket, "prefix", a.s3Prefix)
	case a.minioEndpoint != "":
		if a.minioBucket == "" {
			return fmt.Errorf("--minio-bucket is required with --minio-endpoint")
		}
		var opts []minioblob.DialOption
		if a.minioTLS {
			opts = append(opts, minioblob.WithTLS())
		}
		store, err := minioblob.Dial(a.minioEndpoint, a.minioAccess, a.minioSecret, a.minioBucket, opts...)
		if err != nil {
			return err
		}
		a.blobs = store
		a.logger.Debug("using minio blob store", "endpoint", a.minioEndpoint, "bucket", a.minioBucket)
	default:
		a.blobs = blobstore.NewLocalStore("")
	}
	return nil
}

func (a *app) teardown(cmd *cobra.Command, _ []string) error {
	if a.metricsOut == "" {
		return nil
	}

	families, err := a.registry.Gather()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if a.metricsOut != "-" {
		file, err := os.Create(a.metricsOut)
		if err != nil {
			return err
		}
		defer func() { _ = file.Close() }()
		w = file
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) tensorOptions() []sptensor.Option {
	return []sptensor.Option{
		sptensor.WithStore(a.kind),
		sptensor.WithBranchingFactor(a.branchingFactor),
		sptensor.WithLogger(a.logger),
		sptensor.WithMetricsCollector(a.collector),
	}
}

func (a *app) ioOptions(extra ...tensorio.Option) []tensorio.Option {
	opts := []tensorio.Option{
		tensorio.WithTensorOptions(a.tensorOptions()...),
		tensorio.WithLogger(a.logger),
		tensorio.WithMetricsCollector(a.collector),
	}
	return append(opts, extra...)
}

func (a *app) load(ctx context.Context, name string) (*sptensor.Tensor, error) {
	return tensorio.Load(ctx, a.blobs, name, a.ioOptions()...)
}

func (a *app) save(ctx context.Context, name string, t *sptensor.Tensor, extra ...tensorio.Option) error {
	return tensorio.Save(ctx, a.blobs, name, t, a.ioOptions(extra...)...)
}

// emit writes t to out, or prints it when out is empty.
func (a *app) emit(cmd *cobra.Command, out string, t *sptensor.Tensor) error {
	if out == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), t.String())
		return err
	}
	return a.save(cmd.Context(), out, t)
}

func parseMode(s string) (int, error) {
	m, err := strconv.Atoi(s)
	if err != nil || m < 0 {
		return 0, fmt.Errorf("invalid mode %q", s)
	}
	return m, nil
}
