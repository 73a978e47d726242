package ring

import "testing"

func BenchmarkBuffer_EnqueueDequeue(b *testing.B) {
	buf := New[int](1024)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = buf.Enqueue(i)
		buf.Dequeue()
	}
}

func BenchmarkBuffer_FillDrain(b *testing.B) {
	buf := New[uint64](256)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for buf.Enqueue(uint64(i)) == nil {
		}
		for {
			if _, ok := buf.Dequeue(); !ok {
				break
			}
		}
	}
}

func BenchmarkLocked_EnqueueDequeue(b *testing.B) {
	l := NewLocked[int](1024)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = l.Enqueue(i)
		l.Dequeue()
	}
}

func BenchmarkSPSC_EnqueueDequeue(b *testing.B) {
	q := NewSPSC[int](1024)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = q.Enqueue(i)
		q.Dequeue()
	}
}
