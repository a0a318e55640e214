package submission

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	domain "onboarding-service/internal/domain/submission"
	"onboarding-service/internal/domain/uow"
	"onboarding-service/internal/infrastructure/storage"

	"go.uber.org/zap"
)

// FileStore is the part of storage.LocalStorage the usecase needs.
type FileStore interface {
	Stage(src io.Reader) (*storage.Staged, error)
	Place(st *storage.Staged, name string) (string, error)
	Commit(st *storage.Staged) error
	Rollback(st *storage.Staged) error
}

type Options struct {
	// TimestampedNames qualifies stored filenames with the submission time.
	// When false, repeated submissions for the same place/surname/name share
	// one filename and the last one wins.
	TimestampedNames bool
	Now              func() time.Time
	Logger           *zap.Logger
}

type Usecase struct {
	repo  domain.Repository
	uow   uow.UnitOfWork
	files FileStore
	opts  Options
}

func NewUsecase(repo domain.Repository, tx uow.UnitOfWork, files FileStore, opts Options) *Usecase {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Usecase{repo: repo, uow: tx, files: files, opts: opts}
}

func validate(in SubmitInput) error {
	if in.Image == nil {
		return &domain.ValidationError{Fields: []string{"user_image"}, Reason: domain.ErrMissingImage.Error()}
	}
	var missing []string
	for _, f := range []struct{ name, val string }{
		{"place_id", in.PlaceID},
		{"user_name", in.UserName},
		{"user_surname", in.UserSurname},
		{"emp_position", in.EmpPosition},
	} {
		if strings.TrimSpace(f.val) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return domain.NewMissingFieldsError(missing...)
	}
	if in.ImageFilename == "" {
		return &domain.ValidationError{Fields: []string{"user_image"}, Reason: domain.ErrEmptyFilename.Error()}
	}
	return nil
}

// Submit stores the photo and inserts one record. The photo is staged first
// and only given its final name inside the insert transaction; if the insert
// or the commit fails the file is removed again and any file it replaced is
// put back.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*RecordDTO, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	log := u.opts.Logger.With(zap.String("place_id", in.PlaceID))

	now := u.opts.Now().UTC()
	name := storage.BuildFilename(in.PlaceID, in.UserSurname, in.UserName, now, u.opts.TimestampedNames)

	staged, err := u.files.Stage(in.Image)
	if err != nil {
		return nil, err
	}

	var (
		rec    domain.Record
		placed string
	)
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		got, err := u.files.Place(staged, name)
		if err != nil {
			return err
		}
		placed = got
		rec = domain.Record{
			PlaceID:     in.PlaceID,
			UserName:    in.UserName,
			UserSurname: in.UserSurname,
			EmpPosition: in.EmpPosition,
			UserImage:   &placed,
			CreatedAt:   now,
			CheckinAt:   now,
		}
		if err := r.Submissions.Create(ctx, &rec); err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
		return nil
	})
	if err != nil {
		if rerr := u.files.Rollback(staged); rerr != nil {
			log.Warn("roll back upload", zap.String("file", placed), zap.Error(rerr))
		}
		log.Error("submission failed", zap.Error(err))
		return nil, err
	}

	if err := u.files.Commit(staged); err != nil {
		log.Warn("drop replaced upload", zap.String("file", placed), zap.Error(err))
	}
	log.Info("submission stored",
		zap.Uint64("id", rec.ID),
		zap.String("file", placed),
		zap.Int64("bytes", staged.Size),
	)
	dto := toDTO(rec)
	return &dto, nil
}

// ListByPlace never returns a nil slice.
func (u *Usecase) ListByPlace(ctx context.Context, placeID string) ([]RecordDTO, error) {
	records, err := u.repo.ListByPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	out := make([]RecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, toDTO(r))
	}
	return out, nil
}

// Records returns the raw rows for placeID, for exports.
func (u *Usecase) Records(ctx context.Context, placeID string) ([]domain.Record, error) {
	return u.repo.ListByPlace(ctx, placeID)
}
