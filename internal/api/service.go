/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package api

import (
	"context"
	"time"

	"digital-stamp-go/internal/models"
	"digital-stamp-go/internal/render"
	"digital-stamp-go/internal/session"
	"digital-stamp-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StampService runs the stamp workflows against one session.
type StampService struct {
	renderer *render.Renderer
	images   store.ImageStore
	session  *session.Session
	now      func() time.Time
	newId    func() string
}

func NewStampService(renderer *render.Renderer, images store.ImageStore, sess *session.Session) *StampService {
	return &StampService{
		renderer: renderer,
		images:   images,
		session:  sess,
		now:      time.Now,
		newId:    uuid.NewString,
	}
}

// WithClock overrides the timestamp source.
func (s *StampService) WithClock(now func() time.Time) *StampService {
	s.now = now
	return s
}

func (s *StampService) Session() *session.Session {
	return s.session
}

// logFields prefixes fields with the session id carried on ctx, if any.
func logFields(ctx context.Context, fields ...zap.Field) []zap.Field {
	sc := models.GetSessionContext(ctx)
	if sc == nil {
		return fields
	}
	return append([]zap.Field{zap.String("session_id", sc.SessionId), zap.String("tool", sc.Tool)}, fields...)
}
