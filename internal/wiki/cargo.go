package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/TonybotNi/doctah-mcp/internal/catalog"
	"github.com/TonybotNi/doctah-mcp/internal/recruit"
)

// RecruitableOperators pulls the public-recruitment operator catalog via the
// cargoquery API, joining the character table with its obtain method. The
// query mirrors the in-game recruit calculator's data source. Failures wrap
// catalog.ErrUnavailable.
func (c *Client) RecruitableOperators(ctx context.Context) ([]recruit.Entity, error) {
	params := url.Values{
		"action":  {"cargoquery"},
		"format":  {"json"},
		"tables":  {"chara,char_obtain"},
		"limit":   {"5000"},
		"fields":  {"chara.profession,chara.position,chara.rarity,chara.tag,chara.cn,char_obtain.obtainMethod"},
		"where":   {`char_obtain.obtainMethod like "%公开%招募%" AND chara.charIndex>0`},
		"join_on": {"chara._pageName=char_obtain._pageName"},
	}
	body, err := c.get(ctx, "/api.php", params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrUnavailable, err)
	}

	var payload struct {
		CargoQuery []struct {
			Title struct {
				Profession   string `json:"profession"`
				Position     string `json:"position"`
				Rarity       string `json:"rarity"`
				Tag          string `json:"tag"`
				CN           string `json:"cn"`
				ObtainMethod string `json:"obtainMethod"`
			} `json:"title"`
		} `json:"cargoquery"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decoding cargoquery response: %v", catalog.ErrUnavailable, err)
	}

	entities := make([]recruit.Entity, 0, len(payload.CargoQuery))
	for _, item := range payload.CargoQuery {
		raw := item.Title
		if raw.CN == "" {
			continue
		}
		// The cargo rarity field is 0-based; stars are 1-based.
		rarity, err := strconv.Atoi(strings.TrimSpace(raw.Rarity))
		if err != nil {
			rarity = 0
		}
		entities = append(entities, recruit.Entity{
			Name:       raw.CN,
			Profession: raw.Profession,
			Position:   raw.Position,
			Stars:      rarity + 1,
			Tags:       splitCargoList(raw.Tag),
			Obtain:     splitCargoList(raw.ObtainMethod),
			URL:        c.PageURL(raw.CN),
		})
	}
	c.logger.Debug("fetched recruit catalog", "entities", len(entities))
	return entities, nil
}

func splitCargoList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return strings.Fields(value)
}
