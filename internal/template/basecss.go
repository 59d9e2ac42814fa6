package template

// BaseCSS は全テンプレートのフラグメントが使うクラスの基本スタイル。
// 印刷用ページシェルと公開レジュメページの双方で共有する。
const BaseCSS = `
  * { box-sizing: border-box; }
  body { font-family: "Helvetica Neue", Arial, sans-serif; color: #1f2933; margin: 0; padding: 24px; }
  .resume { max-width: 760px; margin: 0 auto; }
  .resume-name { font-size: 28px; margin: 0 0 4px; }
  .resume-contact, .resume-contact-secondary { color: #52606d; margin: 2px 0; }
  .resume-section { margin-top: 18px; }
  .resume-section h2 { font-size: 15px; text-transform: uppercase; letter-spacing: 1px;
    border-bottom: 1px solid #cbd2d9; padding-bottom: 4px; }
  .entry { margin-bottom: 10px; }
  .entry-head { display: flex; justify-content: space-between; align-items: baseline; }
  .entry-head h3 { font-size: 14px; margin: 0; }
  .entry-dates { color: #52606d; font-size: 12px; white-space: nowrap; }
  .entry-sub { color: #3e4c59; font-size: 12px; margin: 2px 0; }
  .entry-desc { font-size: 12px; margin: 4px 0; }
  .entry-tags { color: #52606d; font-size: 11px; margin: 2px 0; }
  .skill-list, .language-list, .contact-list { list-style: none; padding: 0; margin: 0; }
  .skill-list li { display: flex; align-items: center; gap: 8px; margin-bottom: 4px; font-size: 12px; }
  .skill-meter { flex: 1; max-width: 160px; height: 6px; background: #e4e7eb; border-radius: 3px; }
  .skill-meter-fill, .bar-fill { display: block; height: 100%; background: #3b82f6; border-radius: 3px; }
  .bar { height: 6px; background: #e4e7eb; border-radius: 3px; }
  .resume-modern { display: flex; gap: 24px; }
  .resume-sidebar { width: 220px; background: #f5f7fa; padding: 16px; }
  .resume-main { flex: 1; }
  .resume-photo { width: 96px; height: 96px; border-radius: 50%; object-fit: cover; }
  .skill-chips { list-style: none; padding: 0; margin: 0; display: flex; flex-wrap: wrap; gap: 6px; }
  .chip { background: #eef2ff; color: #3730a3; border-radius: 12px; padding: 2px 10px; font-size: 11px; }
  .chip-small { font-size: 10px; }
  .chip-years { color: #6366f1; }
  .accent { color: #4f46e5; }
  .accent-band { background: #4f46e5; color: #fff; padding: 20px; display: flex; gap: 16px; align-items: center; }
  .accent-band .resume-name, .accent-band .resume-contact { color: #fff; }
`
