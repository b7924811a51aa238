package db

import (
	"context"
	"time"

	"github.com/aburakaktas/host-website-flyer-generator/constant"
	"github.com/aburakaktas/host-website-flyer-generator/domain/flyer"
	"github.com/aburakaktas/host-website-flyer-generator/domain/share"
	appLogger "github.com/aburakaktas/host-website-flyer-generator/infrastructure/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// SQLiteRepository is the durable share.Backend tier. It has no native
// expiry; the share store deletes rows it finds expired on read.
type SQLiteRepository struct {
	db *gorm.DB
}

// ShareModel is the GORM model for a stored share record
type ShareModel struct {
	ShareID   string `gorm:"primaryKey;column:share_id"`
	Image     string `gorm:"not null"`
	QR        string `gorm:"column:qr;not null"`
	CreatedAt time.Time
}

// GormLogger implements GORM's logger.Interface
type GormLogger struct{}

// LogMode implements the log.Interface method
func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	return l
}

// Info logs info messages
func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxInfo(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Warn logs warn messages
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxWarn(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Error logs error messages
func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxError(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Error: &appLogger.CustomError{
			Code:    constant.ErrCodeDBGeneral,
			Message: msg,
			Type:    constant.ErrTypeDB,
		},
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Trace logs SQL operations
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil {
		appLogger.CtxError(ctx, "SQL error", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBGeneral,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataElapsed: elapsed.String(),
				constant.DataRows:    rows,
				constant.DataSQL:     sql,
			},
		})
		return
	}

	// Only log SQL queries if in debug mode
	appLogger.CtxDebug(ctx, "SQL query", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataElapsed: elapsed.String(),
			constant.DataRows:    rows,
			constant.DataSQL:     sql,
		},
	})
}

// NewSQLiteRepository creates a new SQLite-backed share repository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	ctx := appLogger.NewRequestContext()

	appLogger.CtxDebug(ctx, "Opening SQLite database", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	dbLogger := &GormLogger{}

	gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		appLogger.CtxError(ctx, "Failed to open database", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBOpen,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataPath: dbPath,
			},
		})
		return nil, err
	}

	// Auto-migrate the schema
	if err := gdb.AutoMigrate(&ShareModel{}); err != nil {
		appLogger.CtxError(ctx, "Failed to migrate database schema", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBMigrate,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return nil, err
	}

	appLogger.CtxInfo(ctx, "Database initialized successfully", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	return &SQLiteRepository{db: gdb}, nil
}

// Put persists a share record
func (r *SQLiteRepository) Put(ctx context.Context, rec share.Record) error {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO share_models (share_id, image, qr, created_at) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.Assets.Image, rec.Assets.QR, rec.CreatedAt)

	if result.Error != nil {
		appLogger.CtxError(ctx, "Failed to insert share record", appLogger.LoggerInfo{
			ContextFunction: constant.CtxStore,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBInsert,
				Message: result.Error.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataShareID: rec.ID,
			},
		})
		return result.Error
	}

	appLogger.CtxInfo(ctx, "Share record stored", appLogger.LoggerInfo{
		ContextFunction: constant.CtxStore,
		Data: map[string]interface{}{
			constant.DataShareID: rec.ID,
		},
	})

	return nil
}

// Get retrieves a share record by id
func (r *SQLiteRepository) Get(ctx context.Context, id string) (share.Record, error) {
	var model ShareModel

	appLogger.CtxDebug(ctx, "Looking up share record", appLogger.LoggerInfo{
		ContextFunction: constant.CtxFind,
		Data: map[string]interface{}{
			constant.DataShareID: id,
		},
	})

	rows, err := r.db.WithContext(ctx).
		Raw(`SELECT share_id, image, qr, created_at FROM share_models WHERE share_id = ? LIMIT 1`, id).
		Rows()
	if err != nil {
		appLogger.CtxError(ctx, "Database error while looking up share record", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFind,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBLookup,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataShareID: id,
			},
		})
		return share.Record{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		appLogger.CtxInfo(ctx, "Share record not found", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFind,
			Data: map[string]interface{}{
				constant.DataShareID: id,
			},
		})
		return share.Record{}, share.ErrNotFound
	}

	if err := r.db.ScanRows(rows, &model); err != nil {
		appLogger.CtxError(ctx, "Failed to scan database rows", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFind,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBScanRows,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataShareID: id,
			},
		})
		return share.Record{}, err
	}

	if err := rows.Err(); err != nil {
		appLogger.CtxError(ctx, "Row iteration error", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFind,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBRowIterate,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataShareID: id,
			},
		})
		return share.Record{}, err
	}

	appLogger.CtxDebug(ctx, "Share record found", appLogger.LoggerInfo{
		ContextFunction: constant.CtxFind,
		Data: map[string]interface{}{
			constant.DataShareID:   id,
			constant.DataCreatedAt: model.CreatedAt,
		},
	})

	return share.Record{
		ID: model.ShareID,
		Assets: flyer.Assets{
			Image: model.Image,
			QR:    model.QR,
		},
		CreatedAt: model.CreatedAt,
	}, nil
}

// Delete removes a share record; deleting an absent id is not an error
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM share_models WHERE share_id = ?`, id)

	if result.Error != nil {
		appLogger.CtxError(ctx, "Failed to delete share record", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDelete,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBDelete,
				Message: result.Error.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataShareID: id,
			},
		})
		return result.Error
	}

	appLogger.CtxDebug(ctx, "Share record deleted", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDelete,
		Data: map[string]interface{}{
			constant.DataShareID:      id,
			constant.DataRowsAffected: result.RowsAffected,
		},
	})

	return nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		appLogger.Error("Failed to access underlying database", appLogger.LoggerInfo{
			ContextFunction: constant.CtxClose,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBClose,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return err
	}
	return sqlDB.Close()
}
