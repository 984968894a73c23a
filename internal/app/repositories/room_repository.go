package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jromero/examcal/internal/app/models"
)

// Room error types
var (
	ErrRoomNotFound = errors.New("room not found")
)

// RoomRepository handles database operations for rooms
type RoomRepository struct {
	db *pgxpool.Pool
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

// GetByID retrieves a room by ID
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	query := `
		SELECT id, name, type, capacity
		FROM rooms
		WHERE id = $1
	`

	var room models.Room
	err := r.db.QueryRow(ctx, query, id).Scan(&room.ID, &room.Name, &room.Type, &room.Capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("error retrieving room: %w", err)
	}

	return &room, nil
}

// GetAll retrieves rooms, optionally filtered by type
func (r *RoomRepository) GetAll(ctx context.Context, roomType *models.RoomType) ([]*models.Room, error) {
	query := `
		SELECT id, name, type, capacity
		FROM rooms
	`
	var args []interface{}
	if roomType != nil {
		query += ` WHERE type = $1`
		args = append(args, *roomType)
	}
	query += ` ORDER BY capacity, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Type, &room.Capacity); err != nil {
			return nil, err
		}
		rooms = append(rooms, &room)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rooms, nil
}
