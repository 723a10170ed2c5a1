// Package memstore реализация репозитория ссылок в памяти.
//
// Хранилище используется в тестах и в режиме без базы данных. Контракт тот же,
// что у sql-репозитория: составные операции (UpdateFields, RenameWithTombstone)
// выполняются атомарно под мьютексом репозитория, частично примененное
// состояние снаружи не наблюдаемо.
package memstore
