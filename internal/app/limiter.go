package app

import "sync"

// ChatLimiter выполняет обновления одного чата по очереди; разные чаты не ждут друг друга.
// Запись чата удаляется, когда её никто не держит и не ждёт.
type ChatLimiter struct {
	mu   sync.Mutex
	byID map[int64]*chatLock
}

type chatLock struct {
	sync.Mutex
	refs int
}

func NewChatLimiter() *ChatLimiter {
	return &ChatLimiter{byID: make(map[int64]*chatLock)}
}

func (l *ChatLimiter) lock(chatID int64) func() {
	l.mu.Lock()
	c, ok := l.byID[chatID]
	if !ok {
		c = &chatLock{}
		l.byID[chatID] = c
	}
	c.refs++
	l.mu.Unlock()

	c.Lock()
	return func() {
		c.Unlock()
		l.mu.Lock()
		if c.refs--; c.refs == 0 {
			delete(l.byID, chatID)
		}
		l.mu.Unlock()
	}
}

// active: число чатов с запущенными или ожидающими обновлениями.
func (l *ChatLimiter) active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byID)
}
