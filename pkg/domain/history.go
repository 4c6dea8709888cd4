package domain

import (
	"fmt"
	"sync"
)

// EditHistory はエディタとアップスケーラーの編集履歴です。
// 要素は追加のみで、過去の位置から再編集した場合はそれ以降を切り捨てます（undo/redo と同じ意味論）。
// 先頭の要素は元画像です。
type EditHistory struct {
	mu      sync.Mutex
	entries []OperationResult
	active  int
}

// NewEditHistory は元画像を起点に履歴を作成します。
func NewEditHistory(original OperationResult) *EditHistory {
	return &EditHistory{entries: []OperationResult{original}}
}

// Len は履歴の件数を返します。
func (h *EditHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// ActiveIndex は現在選択中の位置を返します。
func (h *EditHistory) ActiveIndex() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active
}

// Active は現在選択中の結果を返します。
func (h *EditHistory) Active() OperationResult {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.active]
}

// Original は元画像を返します。
func (h *EditHistory) Original() OperationResult {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[0]
}

// Entries は履歴のコピーを返します。
func (h *EditHistory) Entries() []OperationResult {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]OperationResult(nil), h.entries...)
}

// Select は指定位置を選択します。要素は変更しません。
func (h *EditHistory) Select(i int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if i < 0 || i >= len(h.entries) {
		return fmt.Errorf("history index %d out of range [0,%d)", i, len(h.entries))
	}
	h.active = i
	return nil
}

// Undo は1つ前を選択します。先頭なら false を返します。
func (h *EditHistory) Undo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == 0 {
		return false
	}
	h.active--
	return true
}

// Redo は1つ後を選択します。末尾なら false を返します。
func (h *EditHistory) Redo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active >= len(h.entries)-1 {
		return false
	}
	h.active++
	return true
}

// Push は選択位置より後ろを切り捨ててから結果を追加し、追加した要素を選択します。
func (h *EditHistory) Push(r OperationResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.active+1:h.active+1], r)
	h.active = len(h.entries) - 1
}
