package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	assetdom "videotoken/internal/domain/asset"
	tokendom "videotoken/internal/domain/token"
)

// Stage names the step of the issuance pipeline a run is in (or died in).
type Stage string

const (
	StageValidating          Stage = "validating"
	StageUploadingAssets     Stage = "uploading_assets"
	StageAssemblingMetadata  Stage = "assembling_metadata"
	StageResolvingSigner     Stage = "resolving_signer"
	StageBuildingTransaction Stage = "building_transaction"
	StageSubmitting          Stage = "submitting"
	StagePersisting          Stage = "persisting"
)

// StageError is the single terminal failure of a run: the originating stage
// plus its cause. No stage after the failing one executes.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// RecordPhase is the persistence half of the two-phase outcome. The chain
// half is implied: a result is only produced after confirmation.
type RecordPhase string

const (
	RecordWritten RecordPhase = "written"
	RecordPending RecordPhase = "pending" // confirmed on chain, record insert failed
)

// IssuanceInput is everything one run needs. Each run gets its own mint
// identity and signer capability; nothing is shared between runs.
type IssuanceInput struct {
	Spec  tokendom.Spec
	Image assetdom.Blob
	Video assetdom.Blob
	Mode  SignerMode
}

// IssuanceResult is the terminal success payload.
type IssuanceResult struct {
	MintAddress string
	Signature   string
	ImageURI    string
	VideoURI    string
	MetadataURI string
	Record      RecordPhase
}

// IssuanceUsecase runs the token issuance pipeline:
//
//	validating → uploading assets → assembling metadata → resolving signer
//	→ building transaction → submitting → persisting
//
// The two asset uploads run concurrently and join before assembly; every
// other stage is strictly sequential. There is no retry, no compensation and
// no rollback: any stage failure is terminal for the run.
type IssuanceUsecase struct {
	Uploader  AssetUploader
	Metadata  *MetadataBuilder
	Signers   SignerResolver
	Builder   TransactionBuilder
	Submitter TransactionSubmitter
	Records   tokendom.IssuanceRecordStore
	Notifier  OperatorNotifier // optional
}

func NewIssuanceUsecase(
	uploader AssetUploader,
	metadata *MetadataBuilder,
	signers SignerResolver,
	builder TransactionBuilder,
	submitter TransactionSubmitter,
	records tokendom.IssuanceRecordStore,
	notifier OperatorNotifier,
) *IssuanceUsecase {
	return &IssuanceUsecase{
		Uploader:  uploader,
		Metadata:  metadata,
		Signers:   signers,
		Builder:   builder,
		Submitter: submitter,
		Records:   records,
		Notifier:  notifier,
	}
}

// Issue executes one full pipeline run and returns a single terminal result.
func (u *IssuanceUsecase) Issue(ctx context.Context, in IssuanceInput) (*IssuanceResult, error) {
	if u == nil || u.Uploader == nil || u.Metadata == nil || u.Signers == nil ||
		u.Builder == nil || u.Submitter == nil || u.Records == nil {
		return nil, fmt.Errorf("issuance usecase is not fully initialized")
	}

	// ---- validating -----------------------------------------------------
	if err := in.Spec.Validate(); err != nil {
		return nil, &StageError{Stage: StageValidating, Err: err}
	}
	if err := in.Image.ValidateImage(); err != nil {
		return nil, &StageError{Stage: StageValidating, Err: fmt.Errorf("image: %w", err)}
	}
	if err := in.Video.ValidateVideo(); err != nil {
		return nil, &StageError{Stage: StageValidating, Err: fmt.Errorf("video: %w", err)}
	}

	// ---- uploading assets (concurrent, both must land) ------------------
	var imageURI, videoURI string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		uri, err := u.Uploader.UploadFile(gctx, in.Image)
		if err != nil {
			return fmt.Errorf("upload image: %w", err)
		}
		imageURI = uri
		return nil
	})
	g.Go(func() error {
		uri, err := u.Uploader.UploadFile(gctx, in.Video)
		if err != nil {
			return fmt.Errorf("upload video: %w", err)
		}
		videoURI = uri
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, &StageError{Stage: StageUploadingAssets, Err: err}
	}

	// ---- assembling metadata --------------------------------------------
	metadataURI, err := u.Metadata.Assemble(ctx, in.Spec, imageURI, videoURI)
	if err != nil {
		return nil, &StageError{Stage: StageAssemblingMetadata, Err: err}
	}

	// ---- resolving signer -----------------------------------------------
	authority, err := u.Signers.Resolve(ctx, in.Mode)
	if err != nil {
		return nil, &StageError{Stage: StageResolvingSigner, Err: err}
	}

	// ---- building transaction -------------------------------------------
	plan, err := u.Builder.Build(in.Spec, metadataURI, authority)
	if err != nil {
		return nil, &StageError{Stage: StageBuildingTransaction, Err: err}
	}

	// ---- submitting -----------------------------------------------------
	sig, err := u.Submitter.Submit(ctx, plan, authority)
	if err != nil {
		return nil, &StageError{Stage: StageSubmitting, Err: err}
	}

	log.Printf("[issuance] confirmed mint=%s signature=%s", plan.MintAddress(), sig)

	// ---- persisting ------------------------------------------------------
	// The mint is already confirmed; a store failure here cannot be rolled
	// back, so the run still succeeds with the record phase left pending.
	rec := tokendom.IssuanceRecord{
		Mint:      plan.MintAddress(),
		Amount:    strings.TrimSpace(in.Spec.Supply),
		VideoURI:  videoURI,
		CreatedAt: time.Now().UTC(),
	}

	result := &IssuanceResult{
		MintAddress: plan.MintAddress(),
		Signature:   sig,
		ImageURI:    imageURI,
		VideoURI:    videoURI,
		MetadataURI: metadataURI,
		Record:      RecordWritten,
	}

	if err := u.Records.Create(ctx, rec); err != nil {
		log.Printf("[issuance] WARN: record insert failed, mint is untracked: mint=%s err=%v", rec.Mint, err)
		if u.Notifier != nil {
			u.Notifier.NotifyRecordPending(ctx, rec, err)
		}
		result.Record = RecordPending
	}

	return result, nil
}
