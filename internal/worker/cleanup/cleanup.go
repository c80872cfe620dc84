// Package cleanup は期限切れリフレッシュトークンの自動削除ジョブを提供する。
// 有効期限を過ぎてから保持期間（デフォルト90日）を超過したレコードを
// 日次バッチで削除する。失効済みトークンも有効期限を過ぎれば削除対象になる。
package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/sasayaki/internal/metrics"
	"github.com/hitoshi/sasayaki/internal/repository"
)

// CleanupJob は保持期間を超過したリフレッシュトークンの自動削除ジョブ。
// 日次実行のバッチジョブとして設計されており、冪等な削除処理を保証する。
type CleanupJob struct {
	tokenRepo     repository.RefreshTokenRepository
	logger        *slog.Logger
	collector     metrics.MetricsCollector
	RetentionDays int // 期限切れ後の保持日数（デフォルト: 90）
}

// NewCleanupJob は新しいCleanupJobを生成する。
// デフォルトの保持日数は90日。
func NewCleanupJob(tokenRepo repository.RefreshTokenRepository, logger *slog.Logger, collector metrics.MetricsCollector) *CleanupJob {
	return &CleanupJob{
		tokenRepo:     tokenRepo,
		logger:        logger,
		collector:     collector,
		RetentionDays: 90,
	}
}

// Run は有効期限がRetentionDays日前より古いトークンを削除する。
// 有効期限内のトークンは失効済みであっても削除しない。失効記録は
// 再利用検知の手掛かりとしてログ調査に使うことがある。
// 冪等: 削除対象がない場合でもエラーにならない。
func (j *CleanupJob) Run(ctx context.Context) error {
	start := time.Now()

	cutoff := time.Now().AddDate(0, 0, -j.RetentionDays)
	deletedCount, err := j.tokenRepo.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error("トークンクリーンアップジョブの実行に失敗しました",
			slog.String("error", err.Error()),
			slog.Int("retention_days", j.RetentionDays),
		)
		return fmt.Errorf("トークンクリーンアップの実行に失敗: %w", err)
	}

	j.collector.RecordTokensPurged(deletedCount)

	duration := time.Since(start)
	j.logger.Info("トークンクリーンアップジョブが完了しました",
		slog.Int64("deleted_count", deletedCount),
		slog.Int("retention_days", j.RetentionDays),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	return nil
}
