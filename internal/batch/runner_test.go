// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eyad6789/images-with-memory/internal/codec"
	"github.com/eyad6789/images-with-memory/internal/config"
	"github.com/eyad6789/images-with-memory/internal/logger"
	"github.com/eyad6789/images-with-memory/internal/mock"
	"github.com/eyad6789/images-with-memory/internal/utils"
	"github.com/eyad6789/images-with-memory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestRunner — хелпер для создания раннера с моками
func newTestRunner(
	t *testing.T,
	ctrl *gomock.Controller,
	cfg config.Batch,
) (Runner, *mock.MockNoteService, *mock.MockCodecDispatcher) {
	t.Helper()
	mockNotes := mock.NewMockNoteService(ctrl)
	mockDispatcher := mock.NewMockCodecDispatcher(ctrl)

	r := NewRunner(mockNotes, mockDispatcher, utils.NewUUIDGenerator(), cfg, logger.Nop())
	return r, mockNotes, mockDispatcher
}

// stubDetectByExtension routes Detect through a plain extension table so
// the tests do not depend on real image content.
func stubDetectByExtension(mockDispatcher *mock.MockCodecDispatcher) {
	mockDispatcher.EXPECT().Detect(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, path string, _ []byte) (models.ImageFormat, error) {
			switch strings.ToLower(filepath.Ext(path)) {
			case ".jpg", ".jpeg":
				return models.FormatJPEG, nil
			case ".png":
				return models.FormatPNG, nil
			}
			return models.FormatUnknown, codec.ErrUnsupportedFormat
		}).AnyTimes()
}

// writeStubFile создаёт файл-заглушку в каталоге dir
func writeStubFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("stub"), 0o600))
	return path
}

// ── Targets ──────────────────────────────────────────────────────────────────

func TestRunner_Run_NoTargets(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, _, _ := newTestRunner(t, ctrl, config.Batch{Concurrency: 1})

	_, err := r.Run(context.Background(), models.BatchRequest{})
	require.ErrorIs(t, err, ErrNoTargets)
}

func TestRunner_Run_DirectorySkipsNonImages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mockNotes, mockDispatcher := newTestRunner(t, ctrl, config.Batch{Concurrency: 4})
	stubDetectByExtension(mockDispatcher)

	dir := t.TempDir()
	jpg := writeStubFile(t, dir, "a.jpg")
	png := writeStubFile(t, dir, "b.png")
	writeStubFile(t, dir, "notes.txt")
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeStubFile(t, sub, "nested.jpg")

	mockNotes.EXPECT().Extract(gomock.Any(), models.ExtractRequest{Path: jpg}).
		Return(models.ExtractResult{Found: true, Note: "hi"}, nil)
	mockNotes.EXPECT().Extract(gomock.Any(), models.ExtractRequest{Path: png}).
		Return(models.ExtractResult{}, nil)

	// Подкаталог без Recursive не обходится
	report, err := r.Run(context.Background(), models.BatchRequest{Paths: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.WithNote)
	assert.Equal(t, 0, report.Failed)
}

func TestRunner_Run_Recursive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mockNotes, mockDispatcher := newTestRunner(t, ctrl, config.Batch{Concurrency: 2})
	stubDetectByExtension(mockDispatcher)

	dir := t.TempDir()
	top := writeStubFile(t, dir, "top.jpg")
	writeStubFile(t, dir, "skip.txt")
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	nested := writeStubFile(t, sub, "nested.png")

	mockNotes.EXPECT().Extract(gomock.Any(), models.ExtractRequest{Path: top}).
		Return(models.ExtractResult{}, nil)
	mockNotes.EXPECT().Extract(gomock.Any(), models.ExtractRequest{Path: nested}).
		Return(models.ExtractResult{Found: true, Note: "deep"}, nil)

	report, err := r.Run(context.Background(), models.BatchRequest{
		Paths:     []string{dir},
		Recursive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.WithNote)
}

func TestRunner_Run_UnreadableTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, _, _ := newTestRunner(t, ctrl, config.Batch{Concurrency: 1})

	missing := filepath.Join(t.TempDir(), "no-such-file.jpg")

	report, err := r.Run(context.Background(), models.BatchRequest{Paths: []string{missing}})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Scanned)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Files, 1)
	assert.Equal(t, missing, report.Files[0].Path)
	assert.NotEmpty(t, report.Files[0].Err)
}

func TestRunner_Run_ExplicitUnsupportedFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mockNotes, mockDispatcher := newTestRunner(t, ctrl, config.Batch{Concurrency: 1})
	stubDetectByExtension(mockDispatcher)

	doc := writeStubFile(t, t.TempDir(), "readme.txt")

	mockNotes.EXPECT().Extract(gomock.Any(), models.ExtractRequest{Path: doc}).
		Return(models.ExtractResult{}, fmt.Errorf("%w: extension %q", codec.ErrUnsupportedFormat, ".txt"))

	// Явно названный файл не фильтруется по расширению
	report, err := r.Run(context.Background(), models.BatchRequest{Paths: []string{doc}})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Scanned)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 0, report.Skipped)
	require.Len(t, report.Files, 1)
	assert.Contains(t, report.Files[0].Err, "unsupported image format")
	assert.Empty(t, report.Files[0].Format)
}

// ── Processing ───────────────────────────────────────────────────────────────

func TestRunner_Run_ExplicitFiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mockNotes, mockDispatcher := newTestRunner(t, ctrl, config.Batch{Concurrency: 1})
	stubDetectByExtension(mockDispatcher)

	dir := t.TempDir()
	withNote := writeStubFile(t, dir, "vacation.jpg")
	withoutNote := writeStubFile(t, dir, "plain.png")

	mockNotes.EXPECT().Extract(gomock.Any(), models.ExtractRequest{Path: withNote}).
		Return(models.ExtractResult{Found: true, Note: "Summer 2023", Version: "1.2.0"}, nil)
	mockNotes.EXPECT().Extract(gomock.Any(), models.ExtractRequest{Path: withoutNote}).
		Return(models.ExtractResult{}, nil)

	report, err := r.Run(context.Background(), models.BatchRequest{
		Paths: []string{withNote, withoutNote},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, 1, report.WithNote)
	assert.Equal(t, 0, report.Failed)
	require.Len(t, report.Files, 2)

	// Один воркер обрабатывает файлы в порядке подачи
	assert.Equal(t, withNote, report.Files[0].Path)
	assert.Equal(t, "jpeg", report.Files[0].Format)
	assert.True(t, report.Files[0].Found)
	assert.Equal(t, "Summer 2023", report.Files[0].Note)
	assert.Equal(t, "1.2.0", report.Files[0].Version)
	assert.Equal(t, "png", report.Files[1].Format)
	assert.False(t, report.Files[1].Found)
}

func TestRunner_Run_VerifyOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mockNotes, mockDispatcher := newTestRunner(t, ctrl, config.Batch{Concurrency: 1})
	stubDetectByExtension(mockDispatcher)

	sealed := writeStubFile(t, t.TempDir(), "sealed.jpg")

	mockNotes.EXPECT().Verify(gomock.Any(), models.VerifyRequest{Path: sealed}).
		Return(models.ExtractResult{Found: true, Note: "<envelope>", IsEncrypted: true, Version: "1.0.0"}, nil)

	report, err := r.Run(context.Background(), models.BatchRequest{
		Paths:      []string{sealed},
		VerifyOnly: true,
	})
	require.NoError(t, err)
	require.Len(t, report.Files, 1)

	entry := report.Files[0]
	assert.True(t, entry.Found)
	assert.True(t, entry.Encrypted)
	assert.Equal(t, "1.0.0", entry.Version)
	// Текст заметки не попадает в отчёт при проверке присутствия
	assert.Empty(t, entry.Note)
	assert.Equal(t, 1, report.WithNote)
}

func TestRunner_Run_CollectsPerFileErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mockNotes, mockDispatcher := newTestRunner(t, ctrl, config.Batch{Concurrency: 1})
	stubDetectByExtension(mockDispatcher)

	dir := t.TempDir()
	first := writeStubFile(t, dir, "first.jpg")
	broken := writeStubFile(t, dir, "broken.jpg")
	last := writeStubFile(t, dir, "last.png")

	mockNotes.EXPECT().Extract(gomock.Any(), models.ExtractRequest{Path: first}).
		Return(models.ExtractResult{Found: true, Note: "ok"}, nil)
	mockNotes.EXPECT().Extract(gomock.Any(), models.ExtractRequest{Path: broken}).
		Return(models.ExtractResult{}, errors.New("metadata torn"))
	mockNotes.EXPECT().Extract(gomock.Any(), models.ExtractRequest{Path: last}).
		Return(models.ExtractResult{}, nil)

	// Без FailFast ошибка одного файла не прерывает прогон
	report, err := r.Run(context.Background(), models.BatchRequest{
		Paths: []string{first, broken, last},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Scanned)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.WithNote)
	require.Len(t, report.Files, 3)
	assert.Contains(t, report.Files[1].Err, "metadata torn")
}

func TestNewRunner_ClampsConcurrency(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Нулевая конкуррентность откатывается к одному воркеру
	r, mockNotes, mockDispatcher := newTestRunner(t, ctrl, config.Batch{Concurrency: 0})
	stubDetectByExtension(mockDispatcher)

	photo := writeStubFile(t, t.TempDir(), "photo.jpg")

	mockNotes.EXPECT().Extract(gomock.Any(), models.ExtractRequest{Path: photo}).
		Return(models.ExtractResult{}, nil)

	report, err := r.Run(context.Background(), models.BatchRequest{Paths: []string{photo}})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Scanned)
}

// ── Cancellation ─────────────────────────────────────────────────────────────

func TestRunner_Run_FailFast(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mockNotes, mockDispatcher := newTestRunner(t, ctrl, config.Batch{Concurrency: 3, FailFast: true})
	stubDetectByExtension(mockDispatcher)

	dir := t.TempDir()
	broken := writeStubFile(t, dir, "broken.jpg")
	slow1 := writeStubFile(t, dir, "slow1.jpg")
	slow2 := writeStubFile(t, dir, "slow2.jpg")

	mockNotes.EXPECT().Extract(gomock.Any(), models.ExtractRequest{Path: broken}).
		Return(models.ExtractResult{}, errors.New("metadata torn"))
	// Остальные файлы висят до отмены контекста: если fail-fast не
	// срабатывает, тест зависает и валится по таймауту go test
	for _, path := range []string{slow1, slow2} {
		mockNotes.EXPECT().Extract(gomock.Any(), models.ExtractRequest{Path: path}).DoAndReturn(
			func(ctx context.Context, _ models.ExtractRequest) (models.ExtractResult, error) {
				<-ctx.Done()
				return models.ExtractResult{}, ctx.Err()
			}).AnyTimes()
	}

	report, err := r.Run(context.Background(), models.BatchRequest{
		Paths: []string{broken, slow1, slow2},
	})
	require.NoError(t, err)

	// Порядок завершения недетерминирован, проверяем только гарантии
	assert.GreaterOrEqual(t, report.Failed, 1)
	assert.LessOrEqual(t, report.Scanned, 3)

	var brokenSeen bool
	for _, file := range report.Files {
		if file.Path == broken {
			brokenSeen = true
			assert.Contains(t, file.Err, "metadata torn")
		}
	}
	assert.True(t, brokenSeen, "broken file must be present in the report")
}

func TestRunner_Run_FailFastOnUnreadableTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, _, _ := newTestRunner(t, ctrl, config.Batch{Concurrency: 2, FailFast: true})

	dir := t.TempDir()
	missing := filepath.Join(dir, "gone.jpg")
	good := writeStubFile(t, dir, "good.jpg")

	// Срыв до запуска пула: сервис и диспетчер не вызываются вовсе
	report, err := r.Run(context.Background(), models.BatchRequest{
		Paths: []string{missing, good},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Scanned)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Files, 1)
	assert.Equal(t, missing, report.Files[0].Path)
}

func TestRunner_Run_Timeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, mockNotes, mockDispatcher := newTestRunner(t, ctrl, config.Batch{
		Concurrency: 1,
		Timeout:     50 * time.Millisecond,
	})
	stubDetectByExtension(mockDispatcher)

	stuck := writeStubFile(t, t.TempDir(), "stuck.jpg")

	mockNotes.EXPECT().Extract(gomock.Any(), models.ExtractRequest{Path: stuck}).DoAndReturn(
		func(ctx context.Context, _ models.ExtractRequest) (models.ExtractResult, error) {
			<-ctx.Done()
			return models.ExtractResult{}, ctx.Err()
		})

	report, err := r.Run(context.Background(), models.BatchRequest{Paths: []string{stuck}})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "batch run interrupted")
	assert.NotEmpty(t, report.RunID)
}
