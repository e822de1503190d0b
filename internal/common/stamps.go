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

package common

import (
	"fmt"
	"strings"

	"digital-stamp-go/internal/models"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// MinIdPrefix is the shortest id prefix accepted on the command line.
const MinIdPrefix = 4

// ResolveStampId maps a full id or a unique id prefix, as printed by the
// collection tool, to a stamp id. An unmatched query is returned unchanged
// so the workflow reports it as not found.
func ResolveStampId(stamps []models.Stamp, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", models.NewValidationError("stampId", "must not be blank")
	}

	if _, ok := lo.Find(stamps, func(st models.Stamp) bool { return st.Id == query }); ok {
		return query, nil
	}
	if len(query) < MinIdPrefix {
		return query, nil
	}

	matches := lo.Filter(stamps, func(st models.Stamp, _ int) bool {
		return strings.HasPrefix(st.Id, query)
	})
	switch len(matches) {
	case 0:
		return query, nil
	case 1:
		zap.L().Debug("Resolved stamp id prefix",
			zap.String("prefix", query),
			zap.String("stamp_id", matches[0].Id))
		return matches[0].Id, nil
	default:
		return "", models.NewValidationError("stampId", fmt.Sprintf("prefix %q matches %d stamps", query, len(matches)))
	}
}

// ShortId is the id form shown in listings.
func ShortId(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
