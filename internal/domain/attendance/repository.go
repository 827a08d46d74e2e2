package attendance

import "context"

type Repository interface {
	Create(ctx context.Context, a Attendance) (Attendance, error)
	CreateBatch(ctx context.Context, punches []Attendance) (int, error)
	List(ctx context.Context, filter Filter) ([]Attendance, int64, error)
}
