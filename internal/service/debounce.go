package service

import (
	"sync"
	"time"
)

// DebounceWindow 输入安静多久后才真正触发搜索
const DebounceWindow = 500 * time.Millisecond

// Debouncer 输入防抖器
// 只在输入停止变化满一个窗口后放行最终值，中间值全部丢弃
type Debouncer struct {
	mu     sync.Mutex
	timer  *time.Timer
	window time.Duration
	fn     func(string)
}

func NewDebouncer(window time.Duration, fn func(string)) *Debouncer {
	return &Debouncer{
		window: window,
		fn:     fn,
	}
}

// Trigger 收到新输入，重新计时并丢弃上一次还没放行的值
func (d *Debouncer) Trigger(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.fn(value)
	})
}

// Flush 跳过等待窗口，立即以给定值触发（深链接进入时使用）
func (d *Debouncer) Flush(value string) {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.fn(value)
}

// Stop 取消未放行的触发
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
