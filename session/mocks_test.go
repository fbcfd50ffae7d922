package session

import (
	"context"

	"github.com/Konsultn-Engineering/dbconsole/connector"
	"github.com/Konsultn-Engineering/dbconsole/database"
	"github.com/stretchr/testify/mock"
)

type mockProvider struct{ mock.Mock }

func (m *mockProvider) OpenConnection(connString string) (connector.Connection, error) {
	args := m.Called(connString)
	conn, _ := args.Get(0).(connector.Connection)
	return conn, args.Error(1)
}

func (m *mockProvider) CreateCommand(conn connector.Connection, sql string) (connector.Command, error) {
	args := m.Called(conn, sql)
	cmd, _ := args.Get(0).(connector.Command)
	return cmd, args.Error(1)
}

func (m *mockProvider) CreateTxCommand(conn connector.Connection, tx connector.Transaction, sql string) (connector.Command, error) {
	args := m.Called(conn, tx, sql)
	cmd, _ := args.Get(0).(connector.Command)
	return cmd, args.Error(1)
}

type mockConnection struct{ mock.Mock }

func (m *mockConnection) Open(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockConnection) BeginTransaction(ctx context.Context) (connector.Transaction, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(connector.Transaction)
	return tx, args.Error(1)
}

func (m *mockConnection) Close() error {
	return m.Called().Error(0)
}

type mockTransaction struct{ mock.Mock }

func (m *mockTransaction) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockTransaction) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockCommand struct{ mock.Mock }

func (m *mockCommand) Text() string {
	return m.Called().String(0)
}

func (m *mockCommand) Query(ctx context.Context) (database.Rows, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).(database.Rows)
	return rows, args.Error(1)
}

func (m *mockCommand) Exec(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
