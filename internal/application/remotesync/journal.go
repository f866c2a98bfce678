package remotesync

import "sync"

// Journal buffer circular con los últimos fallos de sincronización, para mostrarlos como aviso.
type Journal struct {
	mu    sync.Mutex
	buf   []Failure
	next  int
	full  bool
	total int
}

// NewJournal crea un journal que conserva hasta size fallos.
func NewJournal(size int) *Journal {
	if size <= 0 {
		size = 1
	}
	return &Journal{buf: make([]Failure, size)}
}

func (j *Journal) add(f Failure) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.buf[j.next] = f
	j.next = (j.next + 1) % len(j.buf)
	if j.next == 0 {
		j.full = true
	}
	j.total++
}

// Recent fallos conservados, del más nuevo al más viejo.
func (j *Journal) Recent() []Failure {
	j.mu.Lock()
	defer j.mu.Unlock()
	n := j.next
	if j.full {
		n = len(j.buf)
	}
	out := make([]Failure, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, j.buf[(j.next-i+len(j.buf))%len(j.buf)])
	}
	return out
}

// Total fallos registrados desde el arranque, incluidos los que ya salieron del buffer.
func (j *Journal) Total() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.total
}
