// Package mocks provides mock implementations of the text2ture ports for tests.
//
// The mocks are generated with go.uber.org/mock (gomock). To regenerate them after
// an interface in internal/core changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	store := mocks.NewMockResultStore(ctrl)
//	store.EXPECT().WriteSuccess(gomock.Any(), "u1", gomock.Any()).Return(nil)
package mocks

// ResultStore: WriteSuccess, WriteFailure, Read
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=result_store_mock.go github.com/target/text2ture/internal/core ResultStore

// ResultFileWriter: PutFile
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=result_file_writer_mock.go github.com/target/text2ture/internal/core ResultFileWriter

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=submission_registry_mock.go github.com/target/text2ture/internal/core SubmissionRegistry

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=outcome_journal_mock.go github.com/target/text2ture/internal/core OutcomeJournal

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=transcriber_mock.go github.com/target/text2ture/internal/core Transcriber

// JobQueue is implemented by service.Executor; handlers depend on the narrower port.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=job_queue_mock.go github.com/target/text2ture/internal/core JobQueue
