package marks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sankofa-ed/sankofa-sms/internal/grading"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutStudent(ctx context.Context, st Student) (Student, error) {
	if st.Name == "" {
		return Student{}, errors.New("student name required")
	}
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	if st.CreatedAt == 0 {
		st.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO students (id,name,class_name,created_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, class_name=EXCLUDED.class_name`,
		st.ID, st.Name, st.ClassName, st.CreatedAt)
	if err != nil {
		return Student{}, err
	}
	return s.GetStudent(ctx, st.ID)
}

func (s *SQLStore) GetStudent(ctx context.Context, id string) (Student, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,name,class_name,aggregate,created_at FROM students WHERE id=$1`, id)
	var st Student
	var agg sql.NullInt64
	if err := row.Scan(&st.ID, &st.Name, &st.ClassName, &agg, &st.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Student{}, grading.Errorf(grading.KindStudentNotFound, "student %q not found", id)
		}
		return Student{}, err
	}
	if agg.Valid {
		v := int(agg.Int64)
		st.Aggregate = &v
	}
	return st, nil
}

func (s *SQLStore) ListStudents(ctx context.Context) ([]Student, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,name,class_name,aggregate,created_at FROM students ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Student
	for rows.Next() {
		var st Student
		var agg sql.NullInt64
		if err := rows.Scan(&st.ID, &st.Name, &st.ClassName, &agg, &st.CreatedAt); err != nil {
			return nil, err
		}
		if agg.Valid {
			v := int(agg.Int64)
			st.Aggregate = &v
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *SQLStore) PutSubject(ctx context.Context, sub Subject) (Subject, error) {
	if sub.Code == "" || sub.Name == "" {
		return Subject{}, errors.New("subject code and name required")
	}
	switch sub.Kind {
	case grading.SubjectCore, grading.SubjectElective:
	case "":
		sub.Kind = grading.SubjectElective
	default:
		return Subject{}, fmt.Errorf("unknown subject kind %q", sub.Kind)
	}
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO subjects (id,code,name,kind)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (code) DO UPDATE SET name=EXCLUDED.name, kind=EXCLUDED.kind`,
		sub.ID, sub.Code, sub.Name, string(sub.Kind))
	if err != nil {
		return Subject{}, err
	}
	row := s.db.QueryRowContext(ctx, `SELECT id,code,name,kind FROM subjects WHERE code=$1`, sub.Code)
	if err := row.Scan(&sub.ID, &sub.Code, &sub.Name, &sub.Kind); err != nil {
		return Subject{}, err
	}
	return sub, nil
}

func (s *SQLStore) ListSubjects(ctx context.Context) ([]Subject, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,code,name,kind FROM subjects ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Subject
	for rows.Next() {
		var sub Subject
		if err := rows.Scan(&sub.ID, &sub.Code, &sub.Name, &sub.Kind); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// PutMark validates the score, then upserts on (student, subject, term,
// exam_type). Last write wins on the same key; invalid scores never reach the
// table.
func (s *SQLStore) PutMark(ctx context.Context, m Mark) (Mark, error) {
	score, err := grading.ValidateScore(m.Score)
	if err != nil {
		return Mark{}, err
	}
	m.Score = score
	if _, err := s.GetStudent(ctx, m.StudentID); err != nil {
		return Mark{}, err
	}
	var exist int
	if err := s.db.QueryRowContext(ctx, `SELECT 1 FROM subjects WHERE id=$1`, m.SubjectID).Scan(&exist); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Mark{}, fmt.Errorf("subject %q not found", m.SubjectID)
		}
		return Mark{}, err
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.UpdatedAt = time.Now().Unix()
	_, err = s.db.ExecContext(ctx, `INSERT INTO marks (id,student_id,subject_id,term,exam_type,score,updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (student_id,subject_id,term,exam_type)
		DO UPDATE SET score=EXCLUDED.score, updated_at=EXCLUDED.updated_at`,
		m.ID, m.StudentID, m.SubjectID, m.Term, m.ExamType, m.Score, m.UpdatedAt)
	if err != nil {
		return Mark{}, err
	}
	row := s.db.QueryRowContext(ctx, `SELECT id,student_id,subject_id,term,exam_type,score,updated_at
		FROM marks WHERE student_id=$1 AND subject_id=$2 AND term=$3 AND exam_type=$4`,
		m.StudentID, m.SubjectID, m.Term, m.ExamType)
	if err := row.Scan(&m.ID, &m.StudentID, &m.SubjectID, &m.Term, &m.ExamType, &m.Score, &m.UpdatedAt); err != nil {
		return Mark{}, err
	}
	return m, nil
}

func (s *SQLStore) GetMarks(ctx context.Context, studentID, term, examType string) ([]Mark, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,student_id,subject_id,term,exam_type,score,updated_at
		FROM marks WHERE student_id=$1 AND term=$2 AND exam_type=$3`,
		studentID, term, examType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Mark
	for rows.Next() {
		var m Mark
		if err := rows.Scan(&m.ID, &m.StudentID, &m.SubjectID, &m.Term, &m.ExamType, &m.Score, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLStore) SubjectMarks(ctx context.Context, studentID, term, examType string) ([]grading.SubjectMark, error) {
	if _, err := s.GetStudent(ctx, studentID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT sub.code, sub.name, sub.kind, m.score
		FROM marks m JOIN subjects sub ON sub.id = m.subject_id
		WHERE m.student_id=$1 AND m.term=$2 AND m.exam_type=$3
		ORDER BY sub.code`,
		studentID, term, examType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []grading.SubjectMark
	for rows.Next() {
		var sm grading.SubjectMark
		if err := rows.Scan(&sm.SubjectCode, &sm.SubjectName, &sm.Kind, &sm.Score); err != nil {
			return nil, err
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

func (s *SQLStore) SaveAggregate(ctx context.Context, studentID string, aggregate int) error {
	res, err := s.db.ExecContext(ctx, `UPDATE students SET aggregate=$1 WHERE id=$2`, aggregate, studentID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return grading.Errorf(grading.KindStudentNotFound, "student %q not found", studentID)
	}
	return nil
}
