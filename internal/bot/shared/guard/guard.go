// Package guard не даёт запустить тяжёлое админское действие повторно,
// пока предыдущий запуск (из любого чата) не завершился.
package guard

import "sync"

// Действия.
const (
	Reload      = "reload"
	ExportUsers = "export_users"
)

var running = struct {
	sync.Mutex
	byKey map[string]int64 // действие -> чат, который его запустил
}{byKey: make(map[string]int64)}

// Begin занимает действие key за чатом chatID. ok=false: действие уже идёт,
// owner: чат, который его запустил. done освобождает действие.
func Begin(key string, chatID int64) (done func(), owner int64, ok bool) {
	running.Lock()
	defer running.Unlock()
	if cur, busy := running.byKey[key]; busy {
		return func() {}, cur, false
	}
	running.byKey[key] = chatID
	return func() {
		running.Lock()
		delete(running.byKey, key)
		running.Unlock()
	}, chatID, true
}
