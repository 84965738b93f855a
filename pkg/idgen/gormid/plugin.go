// Package gormid 在 gorm 插入前为整数主键分配 Snowflake ID
package gormid

import (
	"context"
	"fmt"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"katydid-common-idgen/pkg/idgen/core"
)

const (
	pluginName   = "idgen:snowflake"
	callbackName = "idgen:assign_id"
)

// Plugin gorm 插件
type Plugin struct {
	gen core.IDGenerator
}

var _ gorm.Plugin = (*Plugin)(nil)

// New 创建插件，使用 db.Use(gormid.New(gen)) 挂载
func New(gen core.IDGenerator) *Plugin {
	return &Plugin{gen: gen}
}

// Name 实现 gorm.Plugin
func (p *Plugin) Name() string {
	return pluginName
}

// Initialize 实现 gorm.Plugin，在 gorm:create 之前注册回调
func (p *Plugin) Initialize(db *gorm.DB) error {
	if p.gen == nil {
		return fmt.Errorf("%w: gormid plugin requires a generator", core.ErrInvalidConfig)
	}
	return db.Callback().Create().Before("gorm:create").Register(callbackName, p.assignIDs)
}

// assignIDs 为零值的整数主键填充ID，支持单条、批量和 map 插入
func (p *Plugin) assignIDs(db *gorm.DB) {
	if db.Error != nil || db.Statement.Schema == nil {
		return
	}

	fields := idFields(db.Statement.Schema)
	if len(fields) == 0 {
		return
	}

	ctx := db.Statement.Context
	rv := db.Statement.ReflectValue
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if maps, ok := rv.Interface().([]map[string]interface{}); ok {
			for _, m := range maps {
				if err := p.fillMap(ctx, fields, m); err != nil {
					_ = db.AddError(err)
					return
				}
			}
			return
		}
		for i := 0; i < rv.Len(); i++ {
			if err := p.fill(ctx, fields, reflect.Indirect(rv.Index(i))); err != nil {
				_ = db.AddError(err)
				return
			}
		}
	case reflect.Struct:
		if err := p.fill(ctx, fields, rv); err != nil {
			_ = db.AddError(err)
		}
	case reflect.Map:
		if m, ok := rv.Interface().(map[string]interface{}); ok {
			if err := p.fillMap(ctx, fields, m); err != nil {
				_ = db.AddError(err)
			}
		}
	}
}

// fillMap 处理 db.Model(&T{}).Create(map[string]interface{}{...})，ID以列名写入
func (p *Plugin) fillMap(ctx context.Context, fields []*schema.Field, m map[string]interface{}) error {
	for _, field := range fields {
		if !mapValueIsZero(m, field.Name) || !mapValueIsZero(m, field.DBName) {
			continue
		}
		id, err := p.gen.NextID(ctx)
		if err != nil {
			return fmt.Errorf("assign id to %s.%s: %w", field.Schema.Name, field.Name, err)
		}
		delete(m, field.Name)
		m[field.DBName] = id
	}
	return nil
}

func mapValueIsZero(m map[string]interface{}, key string) bool {
	v, ok := m[key]
	if !ok || v == nil {
		return true
	}
	return reflect.ValueOf(v).IsZero()
}

func (p *Plugin) fill(ctx context.Context, fields []*schema.Field, rv reflect.Value) error {
	for _, field := range fields {
		if _, isZero := field.ValueOf(ctx, rv); !isZero {
			continue
		}
		id, err := p.gen.NextID(ctx)
		if err != nil {
			return fmt.Errorf("assign id to %s.%s: %w", field.Schema.Name, field.Name, err)
		}
		if err := field.Set(ctx, rv, id); err != nil {
			return fmt.Errorf("set id on %s.%s: %w", field.Schema.Name, field.Name, err)
		}
	}
	return nil
}

// idFields 整数类型的主键字段
func idFields(s *schema.Schema) []*schema.Field {
	var fields []*schema.Field
	for _, field := range s.PrimaryFields {
		if field.DataType == schema.Int || field.DataType == schema.Uint {
			fields = append(fields, field)
		}
	}
	return fields
}
