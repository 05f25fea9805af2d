package database

// Statistics operations

// CountChars returns the number of 平水韵 characters
func (r *Repository) CountChars() (int64, error) {
	var count int64
	err := r.db.Model(&PingshuiChar{}).Count(&count).Error
	return count, err
}

// CountCipai returns the number of templates
func (r *Repository) CountCipai() (int64, error) {
	var count int64
	err := r.db.Model(&Cipai{}).Count(&count).Error
	return count, err
}

// GetStatistics returns overall statistics
func (r *Repository) GetStatistics() (*Statistics, error) {
	stats := &Statistics{}

	var err error
	if stats.TotalChars, err = r.CountChars(); err != nil {
		return nil, err
	}
	if err := r.db.Model(&CilinOverride{}).Count(&stats.TotalOverrides).Error; err != nil {
		return nil, err
	}
	if stats.TotalCipai, err = r.CountCipai(); err != nil {
		return nil, err
	}
	if err := r.db.Model(&CipaiVariant{}).Where("pu = ?", 1).Count(&stats.QinVariants).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&CipaiVariant{}).Where("pu = ?", 2).Count(&stats.LongVariants).Error; err != nil {
		return nil, err
	}

	err = r.db.Model(&CipaiVariant{}).
		Select("length, COUNT(*) as count").
		Where("pu = ?", 1).
		Group("length").
		Order("count DESC, length").
		Limit(10).
		Scan(&stats.CommonLengths).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
